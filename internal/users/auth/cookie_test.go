// Copyright (c) 2026 Talkio. All rights reserved.
// Author: duchieu.pham.dev@gmail.com

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduchieu/talkio/internal/platform/constants"
	"github.com/phamduchieu/talkio/internal/users/auth"
)

/*
TestNewCookiePolicy checks the environment-derived cookie flags.
*/
func TestNewCookiePolicy(t *testing.T) {
	tests := []struct {
		name           string
		isDevelopment  bool
		crossOriginDev bool
		wantSecure     bool
		wantSameSite   http.SameSite
	}{
		{"production", false, false, true, http.SameSiteStrictMode},
		{"development", true, false, false, http.SameSiteStrictMode},
		{"cross_origin_dev", true, true, false, http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := auth.NewCookiePolicy(tt.isDevelopment, tt.crossOriginDev, time.Hour)

			assert.Equal(t, tt.wantSecure, policy.Secure)
			assert.Equal(t, tt.wantSameSite, policy.SameSite)
			assert.Equal(t, time.Hour, policy.MaxAge)
		})
	}
}

/*
TestCookiePolicy_Attach verifies the session cookie wraps the token with
httpOnly and a MaxAge matching the token TTL.
*/
func TestCookiePolicy_Attach(t *testing.T) {
	policy := auth.NewCookiePolicy(false, false, 7*24*time.Hour)

	recorder := httptest.NewRecorder()
	policy.Attach(recorder, "signed-token")

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, constants.SessionCookiePath, cookie.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

/*
TestCookiePolicy_Clear verifies logout expires the cookie immediately.
*/
func TestCookiePolicy_Clear(t *testing.T) {
	policy := auth.NewCookiePolicy(false, false, time.Hour)

	recorder := httptest.NewRecorder()
	policy.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}
