package service_test

import (
	"testing"

	"github.com/MehdiShad/CardexPro/internal/service"
)

func TestRateLimiter_AllowsBurstThenDenies(t *testing.T) {
	rl := service.NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("request past the burst capacity should be denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := service.NewRateLimiter(1, 1)

	if !rl.Allow("a") {
		t.Fatal("first request for key a should be allowed")
	}
	if rl.Allow("a") {
		t.Fatal("second request for key a should be denied")
	}
	if !rl.Allow("b") {
		t.Fatal("key b has its own bucket and should be allowed")
	}
}
