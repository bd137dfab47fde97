package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// PostConfig is the post-processing settings record. It is read and written
// as a whole: callers take a copy from Config, mutate the fields they care
// about, and hand the entire record back through SetConfig. There are no
// per-field setters, so a partial update cannot clobber fields another
// caller changed in the same frame.
type PostConfig struct {
	EnableBloom     bool
	BloomThreshold  float32 // luminance cut-off (1.0 = only HDR-bright pixels)
	BloomIntensity  float32 // additive bloom multiplier
	BloomBlurPasses int     // single-direction blur passes, alternating H/V

	EnableDOF     bool
	FocusDistance float32 // world-space distance in perfect focus
	FocusRange    float32 // distance band around the focus plane
	BokehRadius   float32 // maximum blur radius in texels

	EnableChromaticAberration bool
	AberrationStrength        float32

	Exposure float32
	Gamma    float32
}

// DefaultPostConfig is the startup look: mild bloom, mid-range focus,
// subtle fringing.
func DefaultPostConfig() PostConfig {
	return PostConfig{
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
}

// PostCompositor owns the off-screen HDR frame: the scene renders into its
// colour+depth target between BeginFrame and EndFrame, then EndFrame runs
// bloom extraction, a ping-pong blur chain, and a final composite (bloom add,
// depth of field, chromatic aberration, tone mapping, gamma) onto the default
// framebuffer.
type PostCompositor struct {
	width  int32
	height int32

	cfg PostConfig

	// Scene capture FBO (BeginFrame binds this)
	sceneFBO uint32
	colorTex uint32 // RGBA16F colour attachment (RGBA8 when HDR is unsupported)
	depthTex uint32 // DEPTH_COMPONENT24 depth texture (sampled for DOF)

	// Bloom ping-pong chain, full resolution
	pingFBO     [2]uint32
	pingTex     [2]uint32
	bloomOK     bool // both ping-pong targets verified complete
	bloomResult int  // ping-pong index holding the last blur output

	// Full-screen quad
	quadVAO uint32
	quadVBO uint32

	// 1x1 transparent black, composited when bloom is off or failed this frame
	fallbackTex uint32

	captured bool // BeginFrame succeeded; EndFrame has a frame to composite

	// Bright-pass shader
	brightProg      uint32
	brightThreshLoc int32

	// Separable blur shader
	blurProg          uint32
	blurHorizontalLoc int32

	// Composite shader
	finalProg      uint32
	enableBloomLoc int32
	bloomStrLoc    int32
	enableDOFLoc   int32
	focusDistLoc   int32
	focusRangeLoc  int32
	bokehLoc       int32
	enableCALoc    int32
	caStrLoc       int32
	expLoc         int32
	gammaLoc       int32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

const postVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inUV;
out vec2 fragUV;
void main() {
    fragUV      = inUV;
    gl_Position = vec4(inPosition, 0.0, 1.0);
}
` + "\x00"

// postBrightSrc — extracts pixels whose luminance exceeds the threshold.
const postBrightSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D u_sceneTexture;
uniform float     u_threshold;

void main() {
    vec3  color = texture(u_sceneTexture, fragUV).rgb;
    float luma  = dot(color, vec3(0.2126, 0.7152, 0.0722));
    outColor = vec4(color * step(u_threshold, luma), 1.0);
}
` + "\x00"

// postBlurSrc — single-axis 5-tap Gaussian blur. Each pass blurs one
// direction; the caller alternates u_horizontal between passes.
const postBlurSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D u_image;
uniform bool      u_horizontal;

void main() {
    const float w[5] = float[](0.0625, 0.25, 0.375, 0.25, 0.0625);
    vec2 texel = 1.0 / vec2(textureSize(u_image, 0));
    vec2 dir   = u_horizontal ? vec2(texel.x, 0.0) : vec2(0.0, texel.y);
    vec3 result = vec3(0.0);
    for (int i = -2; i <= 2; i++) {
        result += texture(u_image, fragUV + float(i) * dir).rgb * w[i + 2];
    }
    outColor = vec4(result, 1.0);
}
` + "\x00"

// postFinalSrc — chromatic aberration, depth of field, bloom add, exposure
// tone curve, gamma. Scene colour on unit 0, depth on unit 1, blurred bloom
// (or the transparent fallback) on unit 2.
const postFinalSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D u_sceneTexture; // unit 0
uniform sampler2D u_depthTexture; // unit 1
uniform sampler2D u_bloomTexture; // unit 2

uniform bool  u_enableBloom;
uniform float u_bloomIntensity;
uniform bool  u_enableDOF;
uniform float u_focusDistance;
uniform float u_focusRange;
uniform float u_bokehRadius;
uniform bool  u_enableChromaticAberration;
uniform float u_aberrationStrength;
uniform float u_exposure;
uniform float u_gamma;

// Must match the scene projection planes.
const float NEAR = 0.1;
const float FAR  = 300.0;

float linearDepth(float d) {
    float z = d * 2.0 - 1.0;
    return (2.0 * NEAR * FAR) / (FAR + NEAR - z * (FAR - NEAR));
}

vec3 sampleScene(vec2 uv) {
    if (u_enableChromaticAberration) {
        vec2 shift = (uv - 0.5) * u_aberrationStrength * 0.01;
        return vec3(
            texture(u_sceneTexture, uv + shift).r,
            texture(u_sceneTexture, uv).g,
            texture(u_sceneTexture, uv - shift).b);
    }
    return texture(u_sceneTexture, uv).rgb;
}

void main() {
    vec3 hdr = sampleScene(fragUV);

    if (u_enableDOF) {
        float depth  = linearDepth(texture(u_depthTexture, fragUV).r);
        float coc    = clamp(abs(depth - u_focusDistance) / u_focusRange, 0.0, 1.0);
        float radius = coc * u_bokehRadius;
        if (radius > 0.5) {
            vec2 texel = 1.0 / vec2(textureSize(u_sceneTexture, 0));
            vec3 sum = vec3(0.0);
            for (int x = -2; x <= 2; x++) {
                for (int y = -2; y <= 2; y++) {
                    sum += sampleScene(fragUV + vec2(x, y) * texel * radius);
                }
            }
            hdr = mix(hdr, sum / 25.0, coc);
        }
    }

    if (u_enableBloom) {
        hdr += texture(u_bloomTexture, fragUV).rgb * u_bloomIntensity;
    }

    // Exposure → tone curve → gamma
    vec3 mapped = vec3(1.0) - exp(-hdr * u_exposure);
    outColor = vec4(pow(mapped, vec3(1.0 / u_gamma)), 1.0);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

// NewPostCompositor builds the full chain: quad, shaders, scene target,
// ping-pong targets, fallback texture. A shader or framebuffer failure that
// survives the RGBA8 fallback path is unrecoverable and returns an error so
// the caller can run without post-processing for the session.
func NewPostCompositor(width, height int) (*PostCompositor, error) {
	pc := &PostCompositor{
		width:  int32(width),
		height: int32(height),
		cfg:    DefaultPostConfig(),
	}

	pc.initQuad()
	if err := pc.initShaders(); err != nil {
		pc.Destroy()
		return nil, err
	}
	pc.initFallbackTexture()
	if err := pc.initFramebuffers(); err != nil {
		pc.Destroy()
		return nil, err
	}
	return pc, nil
}

func (pc *PostCompositor) initShaders() error {
	bp, err := newProgram(postVertSrc, postBrightSrc)
	if err != nil {
		return fmt.Errorf("bright-pass shader: %w", err)
	}
	pc.brightProg = bp
	pc.brightThreshLoc = gl.GetUniformLocation(bp, gl.Str("u_threshold\x00"))
	gl.UseProgram(bp)
	gl.Uniform1i(gl.GetUniformLocation(bp, gl.Str("u_sceneTexture\x00")), 0)

	blp, err := newProgram(postVertSrc, postBlurSrc)
	if err != nil {
		return fmt.Errorf("blur shader: %w", err)
	}
	pc.blurProg = blp
	pc.blurHorizontalLoc = gl.GetUniformLocation(blp, gl.Str("u_horizontal\x00"))
	gl.UseProgram(blp)
	gl.Uniform1i(gl.GetUniformLocation(blp, gl.Str("u_image\x00")), 0)

	fp, err := newProgram(postVertSrc, postFinalSrc)
	if err != nil {
		return fmt.Errorf("composite shader: %w", err)
	}
	pc.finalProg = fp
	pc.enableBloomLoc = gl.GetUniformLocation(fp, gl.Str("u_enableBloom\x00"))
	pc.bloomStrLoc = gl.GetUniformLocation(fp, gl.Str("u_bloomIntensity\x00"))
	pc.enableDOFLoc = gl.GetUniformLocation(fp, gl.Str("u_enableDOF\x00"))
	pc.focusDistLoc = gl.GetUniformLocation(fp, gl.Str("u_focusDistance\x00"))
	pc.focusRangeLoc = gl.GetUniformLocation(fp, gl.Str("u_focusRange\x00"))
	pc.bokehLoc = gl.GetUniformLocation(fp, gl.Str("u_bokehRadius\x00"))
	pc.enableCALoc = gl.GetUniformLocation(fp, gl.Str("u_enableChromaticAberration\x00"))
	pc.caStrLoc = gl.GetUniformLocation(fp, gl.Str("u_aberrationStrength\x00"))
	pc.expLoc = gl.GetUniformLocation(fp, gl.Str("u_exposure\x00"))
	pc.gammaLoc = gl.GetUniformLocation(fp, gl.Str("u_gamma\x00"))
	gl.UseProgram(fp)
	gl.Uniform1i(gl.GetUniformLocation(fp, gl.Str("u_sceneTexture\x00")), 0)
	gl.Uniform1i(gl.GetUniformLocation(fp, gl.Str("u_depthTexture\x00")), 1)
	gl.Uniform1i(gl.GetUniformLocation(fp, gl.Str("u_bloomTexture\x00")), 2)

	return nil
}

// ── Framebuffer lifecycle ─────────────────────────────────────────────────────

// newColorTarget allocates a linear clamp-to-edge colour texture, trying
// RGBA16F first and dropping to RGBA8 when the driver rejects float formats.
func newColorTarget(w, h int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	drainGLErrors()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, w, h, 0, gl.RGBA, gl.FLOAT, nil)
	if gl.GetError() != gl.NO_ERROR {
		fmt.Printf("WARNING: RGBA16F unsupported, falling back to RGBA8\n")
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func (pc *PostCompositor) initFramebuffers() error {
	gl.GenFramebuffers(1, &pc.sceneFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, pc.sceneFBO)

	pc.colorTex = newColorTarget(pc.width, pc.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, pc.colorTex, 0)

	gl.GenTextures(1, &pc.depthTex)
	gl.BindTexture(gl.TEXTURE_2D, pc.depthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24,
		pc.width, pc.height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D, pc.depthTex, 0)

	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("scene framebuffer incomplete (0x%X)", s)
	}

	// Ping-pong targets for the blur chain. An incomplete pair only disables
	// bloom, the scene target and composite still work.
	gl.GenFramebuffers(2, &pc.pingFBO[0])
	pc.bloomOK = true
	for i := 0; i < 2; i++ {
		gl.BindFramebuffer(gl.FRAMEBUFFER, pc.pingFBO[i])
		pc.pingTex[i] = newColorTarget(pc.width, pc.height)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
			gl.TEXTURE_2D, pc.pingTex[i], 0)
		if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
			fmt.Printf("WARNING: bloom framebuffer %d incomplete (0x%X), bloom disabled\n", i, s)
			pc.bloomOK = false
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (pc *PostCompositor) destroyFramebuffers() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if pc.sceneFBO != 0 {
		gl.DeleteFramebuffers(1, &pc.sceneFBO)
		pc.sceneFBO = 0
	}
	gl.DeleteFramebuffers(2, &pc.pingFBO[0])
	pc.pingFBO = [2]uint32{}

	if pc.colorTex != 0 {
		gl.DeleteTextures(1, &pc.colorTex)
		pc.colorTex = 0
	}
	if pc.depthTex != 0 {
		gl.DeleteTextures(1, &pc.depthTex)
		pc.depthTex = 0
	}
	gl.DeleteTextures(2, &pc.pingTex[0])
	pc.pingTex = [2]uint32{}

	pc.bloomOK = false
}

func (pc *PostCompositor) initQuad() {
	quad := []float32{
		// x, y, u, v
		-1, 1, 0, 1,
		-1, -1, 0, 0,
		1, -1, 1, 0,
		-1, 1, 0, 1,
		1, -1, 1, 0,
		1, 1, 1, 1,
	}

	gl.GenVertexArrays(1, &pc.quadVAO)
	gl.GenBuffers(1, &pc.quadVBO)

	gl.BindVertexArray(pc.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, pc.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (pc *PostCompositor) initFallbackTexture() {
	gl.GenTextures(1, &pc.fallbackTex)
	gl.BindTexture(gl.TEXTURE_2D, pc.fallbackTex)
	black := [4]uint8{0, 0, 0, 0}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&black[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// ── Per-frame passes ──────────────────────────────────────────────────────────

// BeginFrame redirects subsequent draws into the off-screen scene target.
// If the target is missing or incomplete the default framebuffer stays
// bound and EndFrame will leave the directly rendered frame alone.
func (pc *PostCompositor) BeginFrame() {
	pc.captured = false
	if pc.sceneFBO == 0 {
		fmt.Printf("WARNING: scene framebuffer missing in BeginFrame\n")
		return
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, pc.sceneFBO)
	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		fmt.Printf("WARNING: scene framebuffer incomplete in BeginFrame (0x%X)\n", s)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}

	gl.Viewport(0, 0, pc.width, pc.height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	pc.captured = true
}

// EndFrame runs bloom (best-effort) and composites the captured frame onto
// the default framebuffer. A GL error in the composite pass is returned so
// the caller can drop to direct rendering; bloom errors only cost the glow.
func (pc *PostCompositor) EndFrame() error {
	if !pc.captured {
		// BeginFrame fell back to direct rendering, nothing to composite.
		return nil
	}
	pc.captured = false

	bloomApplied := false
	if pc.cfg.EnableBloom && pc.brightProg != 0 && pc.blurProg != 0 && pc.bloomOK {
		bloomApplied = pc.applyBloom()
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, pc.width, pc.height)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	drainGLErrors()

	if pc.finalProg == 0 {
		return fmt.Errorf("composite program missing")
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(pc.finalProg)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pc.colorTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, pc.depthTex)
	gl.ActiveTexture(gl.TEXTURE2)
	if bloomApplied {
		gl.BindTexture(gl.TEXTURE_2D, pc.pingTex[pc.bloomResult])
	} else {
		gl.BindTexture(gl.TEXTURE_2D, pc.fallbackTex)
	}

	gl.Uniform1i(pc.enableBloomLoc, glBool(pc.cfg.EnableBloom))
	gl.Uniform1f(pc.bloomStrLoc, pc.cfg.BloomIntensity)
	gl.Uniform1i(pc.enableDOFLoc, glBool(pc.cfg.EnableDOF))
	gl.Uniform1f(pc.focusDistLoc, pc.cfg.FocusDistance)
	gl.Uniform1f(pc.focusRangeLoc, pc.cfg.FocusRange)
	gl.Uniform1f(pc.bokehLoc, pc.cfg.BokehRadius)
	gl.Uniform1i(pc.enableCALoc, glBool(pc.cfg.EnableChromaticAberration))
	gl.Uniform1f(pc.caStrLoc, pc.cfg.AberrationStrength)
	gl.Uniform1f(pc.expLoc, pc.cfg.Exposure)
	gl.Uniform1f(pc.gammaLoc, pc.cfg.Gamma)

	pc.drawQuad()
	gl.Enable(gl.DEPTH_TEST)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return fmt.Errorf("composite pass: GL error 0x%X", errCode)
	}
	return nil
}

// applyBloom runs the bright-pass extraction into ping-pong target 0, then
// BloomBlurPasses single-direction blur passes alternating between the two
// targets, starting horizontal. Reports whether the chain finished without
// a GL error; on failure the composite uses the transparent fallback.
func (pc *PostCompositor) applyBloom() bool {
	drainGLErrors()

	gl.BindFramebuffer(gl.FRAMEBUFFER, pc.pingFBO[0])
	gl.Viewport(0, 0, pc.width, pc.height)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(pc.brightProg)
	gl.Uniform1f(pc.brightThreshLoc, pc.cfg.BloomThreshold)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pc.colorTex)
	pc.drawQuad()

	gl.UseProgram(pc.blurProg)
	for i := 0; i < pc.cfg.BloomBlurPasses; i++ {
		horizontal := blurDirection(i)
		dst := 0
		if horizontal {
			dst = 1
		}

		gl.BindFramebuffer(gl.FRAMEBUFFER, pc.pingFBO[dst])
		gl.Viewport(0, 0, pc.width, pc.height)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		gl.Uniform1i(pc.blurHorizontalLoc, glBool(horizontal))
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, pc.pingTex[1-dst])
		pc.drawQuad()
	}
	pc.bloomResult = bloomResultIndex(pc.cfg.BloomBlurPasses)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		fmt.Printf("WARNING: bloom pass failed (GL error 0x%X), continuing without bloom\n", errCode)
		return false
	}
	return true
}

// blurDirection reports whether blur pass i runs horizontally. Passes
// alternate starting with horizontal.
func blurDirection(i int) bool {
	return i%2 == 0
}

// bloomResultIndex is the ping-pong target holding the final blur output.
// The bright extract sits in target 0; pass i writes target 1-i%2, so the
// last write of an odd count lands in 1 and of an even count in 0.
func bloomResultIndex(passes int) int {
	if passes <= 0 {
		return 0
	}
	return passes % 2
}

func (pc *PostCompositor) drawQuad() {
	if pc.quadVAO == 0 {
		fmt.Printf("WARNING: post-processing quad missing, skipping draw\n")
		return
	}
	gl.BindVertexArray(pc.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// ── Resize / teardown ─────────────────────────────────────────────────────────

// Resize rebuilds the framebuffer chain at the new pixel dimensions. The
// quad and shader programs are kept. Matching or non-positive dimensions
// are ignored, and the caller's framebuffer binding is restored.
func (pc *PostCompositor) Resize(width, height int) {
	if int32(width) == pc.width && int32(height) == pc.height {
		return
	}
	if width <= 0 || height <= 0 {
		fmt.Printf("WARNING: ignoring resize to %dx%d\n", width, height)
		return
	}
	pc.width = int32(width)
	pc.height = int32(height)

	drainGLErrors()
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)

	pc.destroyFramebuffers()
	if err := pc.initFramebuffers(); err != nil {
		fmt.Printf("WARNING: framebuffer rebuild failed on resize: %v\n", err)
	}
	if pc.quadVAO == 0 {
		pc.initQuad()
	}

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		fmt.Printf("WARNING: GL error 0x%X during compositor resize\n", errCode)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
}

// Destroy frees all GPU resources owned by the compositor.
func (pc *PostCompositor) Destroy() {
	pc.destroyFramebuffers()

	gl.BindVertexArray(0)
	if pc.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &pc.quadVAO)
		pc.quadVAO = 0
	}
	if pc.quadVBO != 0 {
		gl.DeleteBuffers(1, &pc.quadVBO)
		pc.quadVBO = 0
	}
	if pc.fallbackTex != 0 {
		gl.DeleteTextures(1, &pc.fallbackTex)
		pc.fallbackTex = 0
	}

	if pc.brightProg != 0 {
		gl.DeleteProgram(pc.brightProg)
		pc.brightProg = 0
	}
	if pc.blurProg != 0 {
		gl.DeleteProgram(pc.blurProg)
		pc.blurProg = 0
	}
	if pc.finalProg != 0 {
		gl.DeleteProgram(pc.finalProg)
		pc.finalProg = 0
	}
}

// ── Config ────────────────────────────────────────────────────────────────────

// Config returns a copy of the current settings record. Mutate the copy and
// pass it back through SetConfig.
func (pc *PostCompositor) Config() PostConfig {
	return pc.cfg
}

// SetConfig replaces the settings record wholesale.
func (pc *PostCompositor) SetConfig(cfg PostConfig) {
	pc.cfg = cfg
}

// Size returns the current target dimensions in pixels.
func (pc *PostCompositor) Size() (int, int) {
	return int(pc.width), int(pc.height)
}

// ── Small helpers ─────────────────────────────────────────────────────────────

func glBool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// drainGLErrors clears pending GL error flags so a later GetError reflects
// only the work in between.
func drainGLErrors() {
	for gl.GetError() != gl.NO_ERROR {
	}
}
