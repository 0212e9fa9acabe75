package opengl

// vertexShader maps world coordinates to clip space given the viewport vp,
// whose first point is the bottom left corner and second point the top right corner.
const vertexShader = `
#version 330 core

layout(location = 0) in vec2 pos;
layout(location = 1) in vec4 color;

uniform vec2 vp[2];

out vec4 vcolor;

void main() {
	gl_Position = vec4(2.0 * (pos - vp[0]) / (vp[1] - vp[0]) - 1.0, 0.0, 1.0);
	vcolor = color;
}
`

// fragmentShader paints primitives with their interpolated vertex color.
const fragmentShader = `
#version 330 core

in vec4 vcolor;

out vec4 color;

void main() {
	color = vcolor;
}
`
