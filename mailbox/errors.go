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


package mailbox

import "errors"

var (
	// ErrNotConnected indicates an operation was attempted before Connect
	// succeeded or after the connection was lost.
	ErrNotConnected = errors.New("mailbox: not connected")

	// ErrConnectFailed indicates the transport could not establish a session.
	ErrConnectFailed = errors.New("mailbox: connect failed")

	// ErrFetchFailed indicates new mail could not be retrieved.
	ErrFetchFailed = errors.New("mailbox: fetch failed")

	// ErrSendFailed indicates an outgoing message could not be delivered.
	ErrSendFailed = errors.New("mailbox: send failed")
)
