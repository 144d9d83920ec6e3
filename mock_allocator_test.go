package skipper

import (
	"testing"
	"unsafe"

	"go.uber.org/mock/gomock"
)

// MockAllocator is a hand-maintained mock of the Allocator interface, in
// the shape mockgen would generate for it. It lets the exhaustion path
// in Alloc be exercised deterministically, without racing a real arena
// down to its last cell.
type MockAllocator struct {
	ctrl     *gomock.Controller
	recorder *MockAllocatorRecorder
}

type MockAllocatorRecorder struct {
	mock *MockAllocator
}

func NewMockAllocator(ctrl *gomock.Controller) *MockAllocator {
	m := &MockAllocator{ctrl: ctrl}
	m.recorder = &MockAllocatorRecorder{mock: m}
	return m
}

func (m *MockAllocator) EXPECT() *MockAllocatorRecorder {
	return m.recorder
}

func (m *MockAllocator) Allocate(size, align uintptr) (unsafe.Pointer, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Allocate", size, align)
	ptr, _ := ret[0].(unsafe.Pointer)
	ok, _ := ret[1].(bool)
	return ptr, ok
}

func (r *MockAllocatorRecorder) Allocate(size, align any) *gomock.Call {
	return r.mock.ctrl.RecordCall(r.mock, "Allocate", size, align)
}

func TestAllocReturnsFalseOnExhaustedAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockAllocator(ctrl)
	mock.EXPECT().Allocate(gomock.Any(), gomock.Any()).Return(unsafe.Pointer(nil), false)

	type node struct{ x int }
	p, ok := Alloc[node](mock)
	if ok {
		t.Fatalf("expected Alloc to report failure when the allocator is exhausted")
	}
	if p != nil {
		t.Fatalf("expected nil pointer on exhaustion, got %v", p)
	}
}

func TestAllocDelegatesSizeAndAlignToAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockAllocator(ctrl)

	type big struct{ a, b, c int64 }
	var zero big
	backing := make([]byte, unsafe.Sizeof(zero))
	want := unsafe.Pointer(&backing[0])

	mock.EXPECT().
		Allocate(unsafe.Sizeof(zero), unsafe.Alignof(zero)).
		Return(want, true)

	p, ok := Alloc[big](mock)
	if !ok {
		t.Fatalf("expected Alloc to succeed")
	}
	if unsafe.Pointer(p) != want {
		t.Fatalf("Alloc returned %v; want %v", p, want)
	}
}
