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

package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/arbor/fault"
)

func TestSession(t *testing.T) {
	s, err := NewSession(Sample())
	require.NoError(t, err)

	assert.Equal(t, "Does the device power on?", s.Current().Text)
	assert.Equal(t, []string{"Yes", "No"}, s.Answers())
	assert.False(t, s.Done())

	require.NoError(t, s.Choose("no"))
	require.NoError(t, s.Choose(" YES "))
	require.NoError(t, s.Choose("No"))
	assert.Equal(t, "Does the outlet work with other devices?", s.Current().Text)

	err = s.Choose("maybe")
	assert.True(t, fault.IsErrNotFound(err))

	require.NoError(t, s.Choose("Yes"))
	assert.True(t, s.Done())
	assert.Equal(t, "Replace the charger.", s.Current().Text)
	assert.Empty(t, s.Answers())
	assert.True(t, fault.IsErrInvalid(s.Choose("Yes")))

	assert.Equal(t, []TrailStep{
		{Question: "Does the device power on?", Answer: "No"},
		{Question: "Is it plugged in?", Answer: "Yes"},
		{Question: "Does the charger show a light or indicator?", Answer: "No"},
		{Question: "Does the outlet work with other devices?", Answer: "Yes"},
	}, s.Trail())

	s.Restart()
	assert.Equal(t, "Does the device power on?", s.Current().Text)
	assert.Empty(t, s.Trail())
}

func TestBuild(t *testing.T) {
	_, err := Build(Spec{Text: "Ok?", Answers: []Answer{
		{Label: "Yes", Next: verdict("fine")},
		{Label: "yes", Next: verdict("also fine")},
	}})
	assert.True(t, fault.IsErrExists(err))

	_, err = Build(Spec{Text: "Ok?", Answers: []Answer{{Label: " ", Next: verdict("fine")}}})
	assert.True(t, fault.IsErrInvalid(err))

	_, err = Build(Spec{Text: "Ok?", Answers: []Answer{{Label: "Yes", Next: verdict("")}}})
	assert.True(t, fault.IsErrInvalid(err))

	_, err = NewSession(nil)
	assert.True(t, fault.IsErrInvalid(err))

	tree, err := Build(verdict("Nothing to ask."))
	require.NoError(t, err)
	s, err := NewSession(tree)
	require.NoError(t, err)
	assert.True(t, s.Done())
}

func TestSampleShape(t *testing.T) {
	tree := Sample()
	leaves := 0
	for n := range tree.Walk() {
		if n.IsLeaf() {
			leaves++
		} else {
			assert.Equal(t, 2, n.NumChildren(), n.Key())
		}
	}
	assert.Equal(t, 14, leaves)
}
