package cors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
)

func TestPermissiveHeaders(t *testing.T) {
	headers := cors.Permissive().Headers()

	assert.Equal(t, "*", headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "*", headers["Access-Control-Allow-Headers"])
	assert.Equal(t, "*", headers["Access-Control-Allow-Methods"])
	assert.Equal(t, "application/json", headers["Content-Type"])
}

func TestPreflightUsesNarrowLists(t *testing.T) {
	policy := cors.Permissive()
	policy.AllowOrigin = "http://localhost:3000"

	headers := policy.Preflight()

	assert.Equal(t, "http://localhost:3000", headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "OPTIONS,POST", headers["Access-Control-Allow-Methods"])
	assert.Equal(t, "Content-Type", headers["Access-Control-Allow-Headers"])
}

func TestHeadersReturnsFreshMap(t *testing.T) {
	policy := cors.Permissive()

	first := policy.Headers()
	first["X-Extra"] = "1"

	assert.NotContains(t, policy.Headers(), "X-Extra")
}
