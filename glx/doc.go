// Package glx negotiates an OpenGL context and window drawable through GLX 1.3
// framebuffer configs. It is the fallback when EGL is unavailable.
package glx
