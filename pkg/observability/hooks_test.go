package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSeparationHooks{}
	s.OnPassStart(ctx, 1, 3, 2)
	s.OnSearchComplete(ctx, "rows", 4, 1, time.Millisecond)
	s.OnPassComplete(ctx, 1, true, time.Second)
	s.OnLoopComplete(ctx, 2, time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "separation")
	c.OnCacheMiss(ctx, "separation")
	c.OnCacheSet(ctx, "separation", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/separate")
	h.OnResponse(ctx, "POST", "/v1/separate", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Separation().(NoopSeparationHooks); !ok {
		t.Error("Separation() should return NoopSeparationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customSeparation := &testSeparationHooks{}
	SetSeparationHooks(customSeparation)
	if Separation() != customSeparation {
		t.Error("SetSeparationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Separation().(NoopSeparationHooks); !ok {
		t.Error("Reset() should restore NoopSeparationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSeparationHooks{}
	SetSeparationHooks(custom)
	SetSeparationHooks(nil)

	if Separation() != custom {
		t.Error("SetSeparationHooks(nil) should be ignored")
	}

	Reset()
}

type testSeparationHooks struct{ NoopSeparationHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
