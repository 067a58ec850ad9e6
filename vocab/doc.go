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


// Package vocab holds the fixed vocabulary tables shared by indexing and
// query scoring: the English stopword set and the canonical-term synonym
// table.
//
// Both tables are embedded configuration data, parsed once at process start
// and read-only afterwards. There is deliberately no API to mutate them.
package vocab
