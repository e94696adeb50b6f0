// Copyright 2014 Google Inc. All rights reserved.
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

package raptor

import "github.com/pkg/errors"

// ErrInvalidParameters is returned when an encoder or decoder is asked
// to operate with a non-positive K or an empty source block.
var ErrInvalidParameters = errors.New("raptor: invalid K or empty source block")

// ErrInsufficientRank is returned when a decoder has inserted every
// received equation but the solver still has unresolved columns.
var ErrInsufficientRank = errors.New("raptor: insufficient rank to recover intermediate symbols")

// ErrInconsistentEquation is returned when a row reduces to zero sparse
// columns but a non-zero RHS, which indicates corrupted input or a
// codec parameter mismatch rather than a mere rank deficiency.
var ErrInconsistentEquation = errors.New("raptor: inconsistent equation (zero columns, non-zero value)")

// ErrLengthMismatch is returned when received buffers within one block
// disagree on length.
var ErrLengthMismatch = errors.New("raptor: received symbols have mismatched lengths")
