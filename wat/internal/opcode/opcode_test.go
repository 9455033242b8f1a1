package opcode

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		opcode   byte
		operands int
		imm      ImmKind
	}{
		{"i32.const", 0x41, 0, ImmI32},
		{"i64.add", 0x7C, 2, ImmNone},
		{"f64.sqrt", 0x9F, 1, ImmNone},
		{"global.get", 0x23, 0, ImmU32},
		{"call", 0x10, -1, ImmU32},
		{"memory.grow", 0x40, 1, ImmMemIdx},
		{"i64.extend32_s", 0xC4, 1, ImmNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if info.Opcode != tt.opcode || info.Operands != tt.operands || info.ImmType != tt.imm {
				t.Errorf("Lookup(%q) = %+v", tt.name, info)
			}
		})
	}
	for _, name := range []string{"block", "i32.load", "memory.fill", "i32.constexpr"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) found a simple instruction", name)
		}
	}
}

func TestLookupMemory(t *testing.T) {
	op, ok := LookupMemory("i64.load32_u")
	if !ok || op.Opcode != 0x35 || op.NaturalAlign != 2 || op.Operands != 1 {
		t.Errorf("LookupMemory(i64.load32_u) = %+v, %v", op, ok)
	}
	op, ok = LookupMemory("f64.store")
	if !ok || op.Opcode != 0x39 || op.NaturalAlign != 3 || op.Operands != 2 {
		t.Errorf("LookupMemory(f64.store) = %+v, %v", op, ok)
	}
}

func TestLookupPrefixed(t *testing.T) {
	op, ok := LookupPrefixed("memory.copy")
	if !ok || op.Subop != 10 || op.Operands != 3 {
		t.Errorf("LookupPrefixed(memory.copy) = %+v, %v", op, ok)
	}
	if _, ok := LookupPrefixed("i32.add"); ok {
		t.Error("LookupPrefixed(i32.add) found")
	}
}
