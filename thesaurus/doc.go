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


// Package thesaurus holds the immutable taxonomy index.
//
// An Index is built once from a taxonomy source, one entry per line:
//
//	Aa01A01= 人 士 人物 人士
//	Aa01A02= 人类 生人 全人类
//
// and is read-only afterwards. It maps each code to its word group, each word
// to every code that lists it, and keeps the vocabulary and the total word
// count (each occurrence counted) used for density normalization.
//
// # Thread Safety
//
// An Index has no mutation API. Any number of goroutines may query one
// instance concurrently without synchronization.
package thesaurus
