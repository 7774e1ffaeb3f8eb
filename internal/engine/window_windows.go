//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"Seascape/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	dwmwaUseImmersiveDarkMode = 20
	dwmwaBorderColor          = 34
	dwmwaCaptionColor         = 35
)

// titleBarColor is the clear color as a COLORREF (0x00BBGGRR).
const titleBarColor uint32 = 0x000D0D0D

// applyTitleBarTheme switches the native title bar to dark mode and tints it
// with the scene's clear color.
func applyTitleBarTheme(window *glfw.Window) {
	handle := window.GetWin32Window()
	if handle == nil {
		return
	}
	hwnd := unsafe.Pointer(handle)

	var darkMode int32 = 1
	setWindowAttribute(hwnd, dwmwaUseImmersiveDarkMode, unsafe.Pointer(&darkMode), unsafe.Sizeof(darkMode))

	color := titleBarColor
	setWindowAttribute(hwnd, dwmwaBorderColor, unsafe.Pointer(&color), unsafe.Sizeof(color))
	setWindowAttribute(hwnd, dwmwaCaptionColor, unsafe.Pointer(&color), unsafe.Sizeof(color))
}

func setWindowAttribute(hwnd unsafe.Pointer, attr uintptr, value unsafe.Pointer, size uintptr) {
	// Older Windows builds reject the color attributes; the window still works.
	if ret, _, _ := procDwmSetWindowAttribute.Call(uintptr(hwnd), attr, uintptr(value), size); ret != 0 {
		logger.Log.Debug("DwmSetWindowAttribute failed", zap.Uintptr("attribute", attr), zap.Uintptr("hresult", ret))
	}
}
