package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/rudraojhaif/AetherGL/core"
	"github.com/rudraojhaif/AetherGL/math"
	"github.com/rudraojhaif/AetherGL/terrain"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded terrain mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer is the OpenGL terrain backend. It owns the terrain shader
// program and the GPU copies of uploaded meshes; the per-frame lighting
// uniforms are pushed onto its program by lighting.State.Apply.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	projectionLoc int32
	viewLoc       int32
	modelLoc      int32

	clearColor core.Color
	wireframe  bool

	viewportW int32
	viewportH int32

	gpuMeshes map[*terrain.Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

const terrainVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec3 fragWorldPos;
out vec3 fragNormal;
out vec2 fragUV;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    fragWorldPos  = worldPos.xyz;
    fragNormal    = mat3(model) * inNormal;
    fragUV        = inUV;
    gl_Position   = projection * view * worldPos;
}
` + "\x00"

// terrainFragSrc — height-banded biome colouring with slope-driven rock,
// Blinn-Phong directional + point lights, hemisphere ambient, exponential
// height fog with sun-scatter tinting for atmospheric perspective.
const terrainFragSrc = `
#version 410 core
in vec3 fragWorldPos;
in vec3 fragNormal;
in vec2 fragUV;

out vec4 outColor;

#define MAX_POINT_LIGHTS 8

uniform vec3 viewPos;

// Directional light
uniform bool  u_enableDirLight;
uniform vec3  u_dirLightDir;
uniform vec3  u_dirLightColor;
uniform float u_dirLightIntensity;

// Point lights
uniform int   u_numPointLights;
uniform vec3  u_pointLightPositions[MAX_POINT_LIGHTS];
uniform vec3  u_pointLightColors[MAX_POINT_LIGHTS];
uniform float u_pointLightIntensities[MAX_POINT_LIGHTS];
uniform float u_pointLightRanges[MAX_POINT_LIGHTS];

// Sky-based ambient
uniform bool  u_enableIBL;
uniform float u_iblIntensity;

// Biome height thresholds
uniform float u_grassHeight;
uniform float u_rockHeight;
uniform float u_snowHeight;

// Relief accent on steep slopes
uniform bool  u_enablePOM;
uniform float u_pomScale;
uniform float u_pomSharpen;

// Fog and atmospheric perspective
uniform bool  u_enableAtmosphericFog;
uniform float u_fogDensity;
uniform float u_fogHeightFalloff;
uniform vec3  u_fogColor;
uniform float u_atmosphericPerspective;
uniform vec3  u_sunDirection;
uniform float u_rayleighCoeff;
uniform float u_mieCoeff;
uniform float u_mieG;

const float PI = 3.14159265359;

// Henyey-Greenstein phase for the forward-scattering mie lobe.
float miePhase(float cosTheta, float g) {
    float g2 = g * g;
    return (1.0 - g2) / (4.0 * PI * pow(1.0 + g2 - 2.0 * g * cosTheta, 1.5));
}

vec3 biomeColor(float height, vec3 N) {
    const vec3 dirtColor  = vec3(0.35, 0.28, 0.18);
    const vec3 grassColor = vec3(0.25, 0.45, 0.12);
    const vec3 rockColor  = vec3(0.45, 0.40, 0.36);
    const vec3 snowColor  = vec3(0.92, 0.94, 0.98);

    vec3 color = mix(dirtColor, grassColor, smoothstep(0.0, u_grassHeight, height));
    color = mix(color, rockColor, smoothstep(u_grassHeight, u_rockHeight, height));
    color = mix(color, snowColor, smoothstep(u_rockHeight, u_snowHeight, height));

    // Steep faces read as bare rock whatever the altitude.
    float slope = 1.0 - max(N.y, 0.0);
    return mix(color, rockColor, smoothstep(0.25, 0.6, slope));
}

// Hemisphere gradient standing in for an environment map.
vec3 skyAmbient(vec3 N) {
    vec3 tint = u_enableDirLight ? u_dirLightColor : vec3(0.25, 0.3, 0.45);
    vec3 zenith  = vec3(0.40, 0.60, 0.95) * tint;
    vec3 horizon = vec3(0.70, 0.75, 0.82) * tint;
    vec3 ground  = vec3(0.28, 0.24, 0.20) * tint;
    float t = clamp(N.y, -1.0, 1.0);
    if (t >= 0.0) {
        return mix(horizon, zenith, t);
    }
    return mix(horizon, ground, -t);
}

vec3 applyFog(vec3 color) {
    float dist         = length(fragWorldPos - viewPos);
    float heightFactor = exp(-max(fragWorldPos.y, 0.0) * u_fogHeightFalloff);
    float amount       = clamp(1.0 - exp(-dist * u_fogDensity * heightFactor), 0.0, 1.0);

    vec3 fogTint = u_fogColor;
    if (u_atmosphericPerspective > 0.0) {
        vec3  viewDir  = normalize(fragWorldPos - viewPos);
        float cosTheta = dot(viewDir, normalize(-u_sunDirection));
        float rayleigh = u_rayleighCoeff * (1.0 + cosTheta * cosTheta) * (3.0 / (16.0 * PI));
        float mie      = u_mieCoeff * miePhase(cosTheta, u_mieG);
        vec3  scatter  = u_dirLightColor * u_dirLightIntensity * (rayleigh + mie) * 0.25;
        fogTint = mix(u_fogColor, u_fogColor + scatter, u_atmosphericPerspective);
    }
    return mix(color, fogTint, amount);
}

void main() {
    vec3 N = normalize(fragNormal);
    vec3 V = normalize(viewPos - fragWorldPos);

    vec3 albedo = biomeColor(fragWorldPos.y, N);

    if (u_enablePOM) {
        // Deepen creases on steep slopes for cheap relief.
        float crease = pow(1.0 - max(N.y, 0.0), max(u_pomSharpen, 0.001));
        albedo *= 1.0 - clamp(crease * u_pomScale * 4.0, 0.0, 0.35);
    }

    // Snow glints, grass and dirt stay matte.
    float gloss        = smoothstep(u_rockHeight, u_snowHeight, fragWorldPos.y);
    float specStrength = mix(0.06, 0.35, gloss);

    vec3 color;
    if (u_enableIBL) {
        color = skyAmbient(N) * albedo * u_iblIntensity;
    } else {
        color = albedo * 0.12;
    }

    if (u_enableDirLight) {
        vec3  L   = normalize(-u_dirLightDir);
        float NdL = max(dot(N, L), 0.0);
        vec3  rad = u_dirLightColor * u_dirLightIntensity;
        color += rad * NdL * albedo;
        if (NdL > 0.0) {
            vec3 H = normalize(L + V);
            color += rad * specStrength * pow(max(dot(N, H), 0.0), 32.0);
        }
    }

    for (int i = 0; i < u_numPointLights && i < MAX_POINT_LIGHTS; i++) {
        vec3  toLight = u_pointLightPositions[i] - fragWorldPos;
        float dist    = length(toLight);
        float range   = max(u_pointLightRanges[i], 0.001);
        float atten   = clamp(1.0 - (dist * dist) / (range * range), 0.0, 1.0);
        atten *= atten;
        vec3  L   = normalize(toLight);
        float NdL = max(dot(N, L), 0.0);
        vec3  rad = u_pointLightColors[i] * u_pointLightIntensities[i] * atten;
        color += rad * NdL * albedo;
        if (NdL > 0.0) {
            vec3 H = normalize(L + V);
            color += rad * specStrength * pow(max(dot(N, H), 0.0), 32.0);
        }
    }

    if (u_enableAtmosphericFog) {
        color = applyFog(color);
    }

    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(terrainVertSrc, terrainFragSrc)
	if err != nil {
		return nil, fmt.Errorf("terrain shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	r := &Renderer{
		program: prog,

		projectionLoc: gl.GetUniformLocation(prog, gl.Str("projection\x00")),
		viewLoc:       gl.GetUniformLocation(prog, gl.Str("view\x00")),
		modelLoc:      gl.GetUniformLocation(prog, gl.Str("model\x00")),

		clearColor: core.Color{R: 0.4, G: 0.6, B: 0.9, A: 1},

		gpuMeshes: make(map[*terrain.Mesh]*GPUMesh),
	}
	gl.ClearColor(r.clearColor.R, r.clearColor.G, r.clearColor.B, r.clearColor.A)

	return r, nil
}

// Program exposes the terrain shader program for lighting uniform pushes.
func (r *Renderer) Program() uint32 {
	return r.program
}

// ── Viewport and frame state ──────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport and stores the dimensions.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetClearColor changes the background colour used by Clear.
func (r *Renderer) SetClearColor(c core.Color) {
	r.clearColor = c
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

// Clear wipes the colour and depth buffers of the bound framebuffer.
func (r *Renderer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe toggles wireframe rendering mode.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// IsWireframe returns whether wireframe mode is active.
func (r *Renderer) IsWireframe() bool {
	return r.wireframe
}

// ── Drawing ───────────────────────────────────────────────────────────────────

// DrawTerrain draws a terrain mesh with the given camera matrices. The mesh
// is uploaded on first use; lighting uniforms must already be on the program
// (lighting.State.Apply leaves it active).
func (r *Renderer) DrawTerrain(mesh *terrain.Mesh, projection, view, model math.Mat4) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, (*float32)(unsafe.Pointer(&projection[0][0])))
	gl.UniformMatrix4fv(r.viewLoc, 1, false, (*float32)(unsafe.Pointer(&view[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ── Mesh upload ───────────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *terrain.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		gl.Ptr(mesh.Indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ReleaseMesh frees the GPU buffers of a mesh that is being replaced.
func (r *Renderer) ReleaseMesh(mesh *terrain.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(r.gpuMeshes, mesh)
	mesh.GPUData = nil
}

// Destroy frees the shader program and every uploaded mesh.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
