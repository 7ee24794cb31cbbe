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
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Clean up expired entries every 5 minutes
	resultCacheCleanup = 5 * time.Minute
)

// NewResultCache creates a cache for browser query results that expire after
// the given number of minutes.
func NewResultCache(minutes int) *cache.Cache {
	if minutes <= 0 {
		minutes = defaultConfig.Browse.CacheMinutes
	}
	return cache.New(time.Duration(minutes)*time.Minute, resultCacheCleanup)
}

func resultKey(dataset, query string) string {
	return dataset + "\x00" + query
}

// CacheResult stores a rendered query result. Set overwrites, so re-running a
// query refreshes its expiration.
func CacheResult(c *cache.Cache, dataset, query, result string) {
	c.Set(resultKey(dataset, query), result, cache.DefaultExpiration)
}

// GetResult returns a cached result or the empty string.
func GetResult(c *cache.Cache, dataset, query string) string {
	val, ok := c.Get(resultKey(dataset, query))
	if !ok {
		return ""
	}
	return val.(string)
}
