package game

import "time"

// Clock 提供真实时间读数
//
// 波次过渡延迟按真实时间计算（与模拟帧无关），
// 通过此接口注入时间源，测试中可用 MockClock 精确推进
type Clock interface {
	// Now 返回当前真实时刻
	Now() time.Time
}

// RealClock 使用系统时钟的 Clock 实现
type RealClock struct{}

// Now 返回系统当前时刻
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock 测试用时钟，时间只在显式调用 Advance 时前进
type MockClock struct {
	Current time.Time
}

// NewMockClock 创建测试时钟，起始时刻任意固定
func NewMockClock() *MockClock {
	return &MockClock{Current: time.Unix(0, 0)}
}

// Now 返回模拟当前时刻
func (c *MockClock) Now() time.Time {
	return c.Current
}

// Advance 将模拟时间前进 d
func (c *MockClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
