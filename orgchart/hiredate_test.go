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

package orgchart

import (
	"testing"
	"time"

	"github.com/cybrota/arbor/fault"
)

func TestTranslate(t *testing.T) {
	testCases := []struct {
		layout   string
		expected string
	}{
		{"YYYY-MM-DD", "2006-01-02"},
		{"DD/MM/YYYY", "02/01/2006"},
		{"D MMM YYYY", "2 Jan 2006"},
		{"D MMMM YY", "2 January 06"},
	}
	for _, tc := range testCases {
		t.Run(tc.layout, func(t *testing.T) {
			if got := translate(tc.layout); got != tc.expected {
				t.Errorf("translate(%q) = %q; want %q", tc.layout, got, tc.expected)
			}
		})
	}
}

func TestParseHireDate(t *testing.T) {
	want := time.Date(2017, time.August, 3, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2017-08-03", "03/08/2017", "3 Aug 2017", "3 August 2017", "  2017-08-03 "} {
		t.Run(value, func(t *testing.T) {
			got, err := ParseHireDate(value)
			if err != nil {
				t.Fatalf("ParseHireDate(%q) returned error: %v", value, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseHireDate(%q) = %v; want %v", value, got, want)
			}
		})
	}

	for _, value := range []string{"", "yesterday", "2017/08/03", "31/02/2017"} {
		t.Run("invalid "+value, func(t *testing.T) {
			if _, err := ParseHireDate(value); !fault.IsErrInvalid(err) {
				t.Errorf("ParseHireDate(%q) error = %v; want an invalid error", value, err)
			}
		})
	}
}

func TestFormatHireDate(t *testing.T) {
	if got := FormatHireDate(time.Date(2016, time.February, 1, 0, 0, 0, 0, time.UTC)); got != "1 Feb 2016" {
		t.Errorf("FormatHireDate = %q; want %q", got, "1 Feb 2016")
	}
	if got := FormatHireDate(time.Time{}); got != "" {
		t.Errorf("FormatHireDate(zero) = %q; want empty string", got)
	}
}
