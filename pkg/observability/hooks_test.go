package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnDecodeStart(ctx, "shredded.png")
	p.OnDecodeComplete(ctx, "shredded.png", 640, 359, time.Millisecond, nil)
	p.OnReconstructStart(ctx, 640, 359)
	p.OnReconstructComplete(ctx, 20, time.Second, nil)
	p.OnEncodeStart(ctx, "unshredded.png")
	p.OnEncodeComplete(ctx, "unshredded.png", time.Millisecond, nil)

	m := NoopMergeHooks{}
	m.OnPass(ctx, 1, 20, 7)
	m.OnRelax(ctx, 1, 30, 144)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Merge().(NoopMergeHooks); !ok {
		t.Error("Merge() should return NoopMergeHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customMerge := &testMergeHooks{}
	SetMergeHooks(customMerge)
	if Merge() != customMerge {
		t.Error("SetMergeHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Merge().(NoopMergeHooks); !ok {
		t.Error("Reset() should restore NoopMergeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMergeHooks{}
	SetMergeHooks(custom)
	SetMergeHooks(nil)

	if Merge() != custom {
		t.Error("SetMergeHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testMergeHooks struct{ NoopMergeHooks }
