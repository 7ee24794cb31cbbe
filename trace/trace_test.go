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

package trace

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name           string
		debug, verbose bool
		want           logrus.Level
	}{
		{name: "default", want: logrus.WarnLevel},
		{name: "verbose", verbose: true, want: logrus.InfoLevel},
		{name: "debug", debug: true, want: logrus.DebugLevel},
		{name: "debug wins", debug: true, verbose: true, want: logrus.DebugLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, logger := NewLogger(context.Background(), tc.debug, tc.verbose)
			entry, ok := logger.(*logrus.Entry)
			if assert.True(t, ok) {
				assert.Equal(t, tc.want, entry.Logger.GetLevel())
			}
			assert.Equal(t, logger, FromContext(ctx))
		})
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, OrDiscard(nil))
}
