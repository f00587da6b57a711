package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnTransformStart(ctx, 12)
	p.OnTransformComplete(ctx, 2, 3, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 2)
	p.OnLayoutComplete(ctx, 40, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/api/v1/render")
	s.OnResponse(ctx, "POST", "/api/v1/render", 200, time.Millisecond)
	s.OnError(ctx, "POST", "/api/v1/render", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() should restore NoopServerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	server := &testServerHooks{}
	SetServerHooks(server)
	SetServerHooks(nil)
	if Server() != server {
		t.Error("SetServerHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testServerHooks struct{ NoopServerHooks }
