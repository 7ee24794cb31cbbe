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

package main

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestCacheResultAndGetResult(t *testing.T) {
	c := NewResultCache(30)
	query := "find Emma"
	result := "Emma (Finance Head)"

	// Initially, GetResult should return an empty string for a missing query.
	if got := GetResult(c, "org", query); got != "" {
		t.Errorf("GetResult(%q) = %q; want empty string", query, got)
	}

	CacheResult(c, "org", query, result)

	if got := GetResult(c, "org", query); got != result {
		t.Errorf("GetResult(%q) = %q; want %q", query, got, result)
	}

	// The same query against another dataset is a different entry.
	if got := GetResult(c, "cdn", query); got != "" {
		t.Errorf("GetResult on another dataset = %q; want empty string", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	// Create a cache with a very short expiration time to test expiry behavior.
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)
	query := "path Tokio"
	result := "Central → Asia → Tokio"

	CacheResult(c, "cdn", query, result)

	if got := GetResult(c, "cdn", query); got != result {
		t.Errorf("GetResult(%q) = %q; want %q", query, got, result)
	}

	// Wait longer than the expiration duration.
	time.Sleep(150 * time.Millisecond)

	if got := GetResult(c, "cdn", query); got != "" {
		t.Errorf("After expiration, GetResult(%q) = %q; want empty string", query, got)
	}
}

func TestNewResultCacheDefaults(t *testing.T) {
	c := NewResultCache(0)
	CacheResult(c, "org", "q", "r")
	_, expires, ok := c.GetWithExpiration(resultKey("org", "q"))
	if !ok {
		t.Fatal("cached result not found")
	}
	if d := time.Until(expires); d < 29*time.Minute || d > 31*time.Minute {
		t.Errorf("expiration in %v; want about 30m", d)
	}
}
