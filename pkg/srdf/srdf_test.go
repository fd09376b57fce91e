package srdf

import (
	"testing"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
)

func TestDecode(t *testing.T) {
	doc := `<robot name="sample">
	  <disable_collisions link1="torso" link2="l_upper_arm" reason="Adjacent"/>
	  <disable_collisions link1="l_wrist" link2="l_gripper" reason="Adjacent"/>
	</robot>`

	d, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.Name != "sample" {
		t.Errorf("Name = %q, want sample", d.Name)
	}
	if len(d.DisabledCollisions) != 2 {
		t.Fatalf("pairs = %d, want 2", len(d.DisabledCollisions))
	}
	p := d.DisabledCollisions[0]
	if p.First != "torso" || p.Second != "l_upper_arm" || p.Reason != "Adjacent" {
		t.Errorf("pair = %+v", p)
	}
}

func TestDecodeEmpty(t *testing.T) {
	d, err := Decode([]byte(`<robot name="bare"/>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d.DisabledCollisions) != 0 {
		t.Errorf("pairs = %d, want 0", len(d.DisabledCollisions))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Malformed", `<robot name="x"><disable`},
		{"MissingLink", `<robot name="x"><disable_collisions link1="a"/></robot>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("code = %q, want INVALID_DOCUMENT", errors.GetCode(err))
			}
		})
	}
}
