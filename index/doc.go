// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package index owns the persisted chunked-embedding index over
// enriched mail. It supports incremental Add, full Rebuild, and
// similarity Search under single-writer discipline: writes hold an
// exclusive lock over the snapshot, searches share a read lock.
//
// The index is persisted as a snapshot file plus a chunk→mail sidecar
// used for citation. Persistence is write-new-then-replace: a
// half-written snapshot is never left as the active one, and a failed
// persist leaves the previous snapshot authoritative.
package index
