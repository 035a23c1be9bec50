package engine

// Shader sources for the built-in programs. Attribute locations are bound
// explicitly at build time, so the sources carry no layout qualifiers.

// Instanced mesh program: per-vertex position and normal, per-instance
// color and model/normal matrices, directional plus ambient lighting.
const MeshVertexShaderSource = `
#version 410 core

// per vertex
in vec3 position;
in vec3 normal;
// per instance
in vec3 color;
in mat4 model;
in mat4 normals;

uniform mat4 view;
uniform mat4 projection;

out vec3 basecolor;
out vec3 lighting;

void main() {
    gl_Position = projection * view * model * vec4(position, 1.0);
    basecolor = color;

    vec3 ambientLightColor = vec3(0.1, 0.1, 0.1);
    vec3 directionalLightColor = vec3(1.0, 1.0, 1.0);
    vec3 directionalLight = normalize(vec3(3.0, 3.0, 5.0));

    vec4 transformedNormal = normalize(normals * vec4(normal, 1.0));
    float intensity = max(dot(transformedNormal.xyz, directionalLight), 0.0);
    lighting = ambientLightColor + (directionalLightColor * intensity);
}
`

const MeshFragmentShaderSource = `
#version 410 core

in vec3 basecolor;
in vec3 lighting;

out vec4 fragColor;

void main() {
    fragColor = vec4(basecolor * lighting, 1.0);
}
`

// Console overlay program: screen-space strips with per-vertex color.
const consoleVertexShaderSource = `
#version 410 core

in vec2 position;
in vec4 color;

uniform mat4 transform;

out vec4 stripColor;

void main() {
    gl_Position = transform * vec4(position, 0.0, 1.0);
    stripColor = color;
}
`

const consoleFragmentShaderSource = `
#version 410 core

in vec4 stripColor;

out vec4 fragColor;

void main() {
    fragColor = stripColor;
}
`
