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
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cybrota/arbor/fault"
)

// HireDateLayouts are the spreadsheet style layouts accepted for hire dates,
// tried in order.
//
//	D    - day (2)       DD   - day (02)
//	M    - month (1)     MM   - month (01)
//	MMM  - month (Jan)   MMMM - month (January)
//	YY   - year (06)     YYYY - year (2006)
var HireDateLayouts = []string{
	"YYYY-MM-DD",
	"DD/MM/YYYY",
	"D MMM YYYY",
	"D MMMM YYYY",
}

// DefaultHireDateLayout is used when printing hire dates.
const DefaultHireDateLayout = "D MMM YYYY"

type placeholder struct{ find, subst string }

// longest placeholders first so MMMM is not eaten by MM
var placeholders = []placeholder{
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"YYYY", "2006"},
	{"YY", "06"},
	{"DD", "02"},
	{"D", "2"},
}

// translate turns a spreadsheet layout into Go's reference time layout.
func translate(layout string) string {
	out := layout
	for _, ph := range placeholders {
		out = strings.ReplaceAll(out, ph.find, ph.subst)
	}
	return out
}

// ParseHireDate reads value in the first of HireDateLayouts that fits.
func ParseHireDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range HireDateLayouts {
		if t, err := time.Parse(translate(layout), value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(fault.InvalidError("unrecognized hire date"), "%q (want one of %s)",
		value, strings.Join(HireDateLayouts, ", "))
}

// FormatHireDate prints t with DefaultHireDateLayout, or nothing for the zero time.
func FormatHireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(translate(DefaultHireDateLayout))
}
