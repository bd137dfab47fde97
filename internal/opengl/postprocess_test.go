package opengl

import "testing"

func TestDefaultPostConfig(t *testing.T) {
	want := PostConfig{
		EnableBloom:     true,
		BloomThreshold:  1.0,
		BloomIntensity:  0.8,
		BloomBlurPasses: 5,

		EnableDOF:     true,
		FocusDistance: 10.0,
		FocusRange:    5.0,
		BokehRadius:   3.0,

		EnableChromaticAberration: true,
		AberrationStrength:        0.5,

		Exposure: 1.0,
		Gamma:    2.2,
	}
	if got := DefaultPostConfig(); got != want {
		t.Errorf("defaults = %+v, want %+v", got, want)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	pc := &PostCompositor{cfg: DefaultPostConfig()}

	cfg := pc.Config()
	cfg.EnableBloom = false
	cfg.BloomBlurPasses = 9
	if !pc.Config().EnableBloom {
		t.Error("mutating the returned copy changed the compositor")
	}

	pc.SetConfig(cfg)
	got := pc.Config()
	if got.EnableBloom {
		t.Error("EnableBloom not applied by SetConfig")
	}
	if got.BloomBlurPasses != 9 {
		t.Errorf("BloomBlurPasses = %d, want 9", got.BloomBlurPasses)
	}
	if got.Gamma != 2.2 {
		t.Errorf("untouched Gamma = %g after round trip, want 2.2", got.Gamma)
	}
}

func TestBlurDirectionAlternates(t *testing.T) {
	want := []bool{true, false, true, false, true, false}
	for i, w := range want {
		if got := blurDirection(i); got != w {
			t.Errorf("pass %d: horizontal = %v, want %v", i, got, w)
		}
	}
}

func TestBloomResultIndex(t *testing.T) {
	cases := []struct {
		passes int
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, 0},
		{3, 1},
		{4, 0},
		{5, 1},
		{6, 0},
	}
	for _, c := range cases {
		if got := bloomResultIndex(c.passes); got != c.want {
			t.Errorf("bloomResultIndex(%d) = %d, want %d", c.passes, got, c.want)
		}
	}
}

// The result index must agree with where the pass loop actually writes.
func TestBloomResultMatchesPassSequence(t *testing.T) {
	for passes := 1; passes <= 8; passes++ {
		dst := 0
		for i := 0; i < passes; i++ {
			if blurDirection(i) {
				dst = 1
			} else {
				dst = 0
			}
		}
		if got := bloomResultIndex(passes); got != dst {
			t.Errorf("%d passes: result index %d, last write went to target %d", passes, got, dst)
		}
	}
}

func TestResizeGuards(t *testing.T) {
	pc := &PostCompositor{width: 800, height: 600}

	pc.Resize(800, 600)
	if w, h := pc.Size(); w != 800 || h != 600 {
		t.Errorf("same-size resize changed dimensions to %dx%d", w, h)
	}

	pc.Resize(0, 600)
	pc.Resize(800, 0)
	pc.Resize(-4, -3)
	if w, h := pc.Size(); w != 800 || h != 600 {
		t.Errorf("invalid resize changed dimensions to %dx%d", w, h)
	}
}

func TestEndFrameWithoutCapture(t *testing.T) {
	pc := &PostCompositor{}
	if err := pc.EndFrame(); err != nil {
		t.Errorf("EndFrame without a captured frame: unexpected error %v", err)
	}
}

func TestBeginFrameWithoutTarget(t *testing.T) {
	pc := &PostCompositor{}
	pc.BeginFrame()
	if pc.captured {
		t.Error("capture flagged without a scene framebuffer")
	}
	if err := pc.EndFrame(); err != nil {
		t.Errorf("EndFrame after failed BeginFrame: unexpected error %v", err)
	}
}
