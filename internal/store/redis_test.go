package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loginattendance/internal/store"
)

func TestRedis_NilIsUnhealthy(t *testing.T) {
	var r *store.Redis
	assert.False(t, r.Healthy(context.Background()))
	assert.NoError(t, r.Close())
}

func TestRedis_UnreachableIsUnhealthy(t *testing.T) {
	r := store.NewRedis("127.0.0.1:1")
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.False(t, r.Healthy(ctx))
}
