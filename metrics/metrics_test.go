// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/33cn/lottery/types"
	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := Counter("test.counter")
	before := c.Count()
	c.Inc(2)
	assert.Equal(t, before+2, Counter("test.counter").Count())
	Timer("test.timer").UpdateSince(time.Now())
	assert.Equal(t, int64(1), Timer("test.timer").Count())
}

func TestWriteOnce(t *testing.T) {
	Counter("test.write").Inc(1)

	StartMetrics(&types.Metrics{EnableMetrics: false})
	var buf bytes.Buffer
	WriteOnce(&buf)
	assert.Equal(t, 0, buf.Len())
	assert.False(t, Enabled())

	StartMetrics(&types.Metrics{EnableMetrics: true})
	defer StartMetrics(nil)
	WriteOnce(&buf)
	assert.Contains(t, buf.String(), "test.write")
}
