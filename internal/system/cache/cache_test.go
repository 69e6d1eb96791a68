/*
 * Copyright (c) 2025, OpenIAM LLC. (http://www.openiam.com).
 *
 * OpenIAM LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestSetAndGet(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("birth_name::PROC_A", 3)

	value, found := c.Get("birth_name::PROC_A")
	require.True(t, found)
	assert.Equal(t, 3, value)
}

func TestGetMissingKey(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("unknown")
	assert.False(t, found)
}

func TestExpiredEntryIsNotReturned(t *testing.T) {
	c := NewCache(-time.Second)
	c.Set("key", "value")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("key", "value")
	c.Invalidate("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestReplaceAllEvictsStaleKeys(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("stale", 1)
	c.Set("kept", 2)

	c.ReplaceAll(map[string]interface{}{
		"kept": 3,
		"new":  4,
	})

	_, found := c.Get("stale")
	assert.False(t, found)

	value, found := c.Get("kept")
	require.True(t, found)
	assert.Equal(t, 3, value)

	value, found = c.Get("new")
	require.True(t, found)
	assert.Equal(t, 4, value)
	assert.Equal(t, 2, c.Len())
}

func TestConcurrentAccessWithReplaceAll(t *testing.T) {
	c := NewCache(time.Minute)
	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprint("key-", i), i)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get(fmt.Sprint("key-", j%50))
			}
		}(i)
		go func(n int) {
			defer wg.Done()
			entries := make(map[string]interface{}, 50)
			for j := 0; j < 50; j++ {
				entries[fmt.Sprint("key-", j)] = j + n
			}
			c.ReplaceAll(entries)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}
