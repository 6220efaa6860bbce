package raster

import "testing"

func TestMakeBuffer(t *testing.T) {
	cases := []struct {
		dt  DataType
		len int
	}{
		{Byte, 16},
		{UInt16, 8},
		{Int16, 8},
		{UInt32, 4},
		{Int32, 4},
		{Float32, 4},
		{Float64, 2},
	}
	for _, c := range cases {
		buf, err := MakeBuffer(c.dt, c.len)
		if err != nil {
			t.Fatalf("MakeBuffer(%s): %v", c.dt, err)
		}
		var n int
		switch b := buf.(type) {
		case []uint8:
			n = len(b)
		case []uint16:
			n = len(b)
		case []int16:
			n = len(b)
		case []uint32:
			n = len(b)
		case []int32:
			n = len(b)
		case []float32:
			n = len(b)
		case []float64:
			n = len(b)
		default:
			t.Fatalf("MakeBuffer(%s): unexpected buffer type %T", c.dt, buf)
		}
		if n != c.len {
			t.Errorf("MakeBuffer(%s): got length %d, want %d", c.dt, n, c.len)
		}
	}
}

func TestMakeBufferUnknownType(t *testing.T) {
	if _, err := MakeBuffer(Unknown, 4); err == nil {
		t.Fatal("expected error for Unknown data type")
	}
}

func TestDataTypeString(t *testing.T) {
	if got := Byte.String(); got != "Byte" {
		t.Errorf("Byte.String() = %q", got)
	}
	if got := Unknown.String(); got != "Unknown" {
		t.Errorf("Unknown.String() = %q", got)
	}
}
