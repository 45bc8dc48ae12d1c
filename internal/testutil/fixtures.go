// Package testutil 提供测试辅助工具
package testutil

import (
	"strings"
	"testing"
)

// SampleVitals 返回一组正常范围内的生命体征读数
func SampleVitals() map[string]any {
	return map[string]any{
		"Glucose":                    90.0,
		"SpO2":                       98.0,
		"ECG (Heart Rate)":           72.0,
		"Blood Pressure (Systolic)":  118.0,
		"Blood Pressure (Diastolic)": 76.0,
		"Temperature":                36.6,
		"Weight (BMI)":               22.5,
		"Malaria":                    "Negative",
	}
}

// AssertHelper 提供断言相关的测试辅助
type AssertHelper struct {
	t *testing.T
}

// NewAssertHelper 创建断言辅助器
func NewAssertHelper(t *testing.T) *AssertHelper {
	return &AssertHelper{t: t}
}

// NoError 断言没有错误
func (h *AssertHelper) NoError(err error) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("Unexpected error: %v", err)
	}
}

// Error 断言有错误
func (h *AssertHelper) Error(err error) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
}

// Equal 断言相等
func (h *AssertHelper) Equal(expected, actual interface{}) {
	h.t.Helper()
	if expected != actual {
		h.t.Fatalf("Expected %v, got %v", expected, actual)
	}
}

// Contains 断言字符串包含子串
func (h *AssertHelper) Contains(s, substr string) {
	h.t.Helper()
	if !strings.Contains(s, substr) {
		h.t.Fatalf("%q does not contain %q", s, substr)
	}
}

// True 断言为真
func (h *AssertHelper) True(condition bool) {
	h.t.Helper()
	if !condition {
		h.t.Fatal("Expected true, got false")
	}
}

// NotNil 断言非 nil
func (h *AssertHelper) NotNil(v interface{}) {
	h.t.Helper()
	if v == nil {
		h.t.Fatal("Expected non-nil, got nil")
	}
}
