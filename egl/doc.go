// Package egl negotiates a desktop OpenGL context and window surface through
// EGL on the native X11 handles of a window.
package egl
