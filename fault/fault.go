// Copyright 2025 Naren Yellavula
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

// Package fault holds the error classes shared by the tree packages.
//
// Each class is a distinct string type so callers can tell a missing key
// from a malformed one without matching on message text.
package fault

import "github.com/pkg/errors"

// the error classes
type InvalidError string
type ExistsError string
type NotFoundError string
type CycleError string

// common errors - keep in alphabetic order
var (
	ErrCycle           = CycleError("attach would create a cycle")
	ErrDuplicateKey    = ExistsError("key already exists")
	ErrDuplicateRoot   = ExistsError("tree already has a root")
	ErrEmptyKey        = InvalidError("key must not be empty")
	ErrHasParent       = InvalidError("node already has a parent")
	ErrKeyNotFound     = NotFoundError("key not found")
	ErrNilNode         = InvalidError("node is nil")
	ErrParentNotInTree = NotFoundError("parent is not part of the tree")
)

func (e InvalidError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e CycleError) Error() string    { return string(e) }

// determine the class of an error, looking through errors.Wrap layers
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrCycle(e error) bool    { _, ok := errors.Cause(e).(CycleError); return ok }
