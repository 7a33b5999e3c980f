package handler

import (
	"testing"
	"time"
)

func TestOTPTTLCountsInSeconds(t *testing.T) {
	h := newTestHandler(t)
	h.config.OTP.Expiration = 900 // 15 分钟

	if got := h.otpTTL(); got != 15*time.Minute {
		t.Fatalf("900 秒的配置应换算为 15 分钟，实际 %v", got)
	}
}
