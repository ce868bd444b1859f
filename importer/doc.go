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


// Package importer copies a taxonomy into a persistent store and loads it back.
//
// Import writes entries in batches, retrying transaction conflicts with
// exponential backoff and splitting batches that exceed the store's
// transaction limit. The taxonomy fingerprint is recorded last, so a store
// with a fingerprint always holds a complete snapshot. Re-importing a source
// whose fingerprint matches the stored one does nothing.
package importer
