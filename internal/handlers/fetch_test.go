package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"peekweb/internal/apiclient"

	"github.com/stretchr/testify/assert"
)

func TestFetchGroupPrefersUnauthorized(t *testing.T) {
	serverErr := &apiclient.APIError{Kind: apiclient.KindHTTP, Status: http.StatusInternalServerError, Msg: "数据库不可用"}
	authErr := &apiclient.APIError{Kind: apiclient.KindAuth, Status: http.StatusUnauthorized, Msg: "token expired", Err: apiclient.ErrUnauthorized}

	var g fetchGroup
	g.Go(func() error { return serverErr })
	g.Go(func() error {
		// 晚于 5xx 返回
		time.Sleep(20 * time.Millisecond)
		return authErr
	})
	g.Go(func() error { return nil })

	err := g.Wait()
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Same(t, authErr, err)
}

func TestFetchGroupKeepsFirstErrorWithoutUnauthorized(t *testing.T) {
	first := errors.New("first")

	var g fetchGroup
	g.Go(func() error { return first })
	g.Go(func() error {
		time.Sleep(20 * time.Millisecond)
		return errors.New("second")
	})
	assert.Same(t, first, g.Wait())

	var ok fetchGroup
	ok.Go(func() error { return nil })
	assert.NoError(t, ok.Wait())
}
