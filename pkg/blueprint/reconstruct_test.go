package blueprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

func intp(i int) *int { return &i }

func strp(s string) *string { return &s }

func dockedTo(name string, order int, sid int, port string) PortRecord {
	return PortRecord{PortName: name, OrderID: intp(order), DockedStructureID: intp(sid), DockedPortName: strp(port)}
}

func free(name string, order int) PortRecord {
	return PortRecord{PortName: name, OrderID: intp(order)}
}

func record(id int, typ string, ports ...PortRecord) StructureRecord {
	return StructureRecord{StructureID: intp(id), StructureType: typ, DockingPorts: ports}
}

func doc(records ...StructureRecord) *Document {
	d := NewDocument()
	d.Structures = records
	return d
}

func TestReconstructRoundTrip(t *testing.T) {
	b, s := stationFixture(t)
	b.SetName(strp("Outpost"))
	b.SetLinkURI(strp("https://example.com/outpost"))
	s[2].Port("C").SetLocked(true)
	s[5].SetAuxData(Metadata{"Flag": true})

	want := b.Document()
	got, repairs, err := Reconstruct(want, b.Catalog())
	require.NoError(t, err)
	assert.Empty(t, repairs)
	assert.False(t, got.Dirty())
	assert.Equal(t, want, got.Document())

	assert.Equal(t, got.GetStructure(0), got.PrimaryRoot())
	assert.Equal(t, []int{4}, ids(got.SecondaryRoots()))
	assert.Equal(t, "Outpost", *got.Name())
}

func TestReconstructElectsLowestIDInSecondaryComponent(t *testing.T) {
	d := doc(
		record(0, "TIP", free("A", 1)),
		record(7, "MOD", dockedTo("A", 1, 3, "A"), free("B", 2), free("C", 3)),
		record(3, "TIP", dockedTo("A", 1, 7, "A")),
	)
	b, _, err := Reconstruct(d, testCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(b.SecondaryRoots()))
	assert.Equal(t, b.GetStructure(3), b.GetStructure(7).GetStructureRoot())
	assert.Equal(t, []int{0, 3, 7}, ids(b.Flatten()))
}

// A port whose name and order index disagree keeps its name.
func TestReconstructNameWinsOverOrderIndex(t *testing.T) {
	cat := testCatalog(t)
	d := doc(
		record(0, "MOD", free("A", 1), PortRecord{PortName: "B", OrderID: intp(1), Locked: true}),
	)
	b, repairs, err := Reconstruct(d, cat)
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, 0, repairs[0].StructureID)
	assert.Equal(t, "B", string(repairs[0].Port))
	assert.True(t, b.Dirty())

	p := b.GetStructure(0).Port("B")
	require.NotNil(t, p)
	assert.True(t, p.Locked())
	assert.Equal(t, 2, p.OrderIndex())
	assert.Equal(t, p.Name(), cat.PortNameFor(sceneMOD, p.OrderIndex()))
	assert.False(t, b.GetStructure(0).Port("A").Locked())
}

func TestReconstructRepairs(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		reasons []string
		check   func(t *testing.T, b *Blueprint)
	}{
		{
			name:    "name only",
			doc:     doc(record(0, "MOD", PortRecord{PortName: "C", Locked: true})),
			reasons: []string{"derived order index 3"},
			check: func(t *testing.T, b *Blueprint) {
				assert.True(t, b.Port(0, "C").Locked())
			},
		},
		{
			name:    "order only",
			doc:     doc(record(0, "MOD", PortRecord{OrderID: intp(2), Locked: true})),
			reasons: []string{"derived name from order index 2"},
			check: func(t *testing.T, b *Blueprint) {
				assert.True(t, b.Port(0, "B").Locked())
			},
		},
		{
			name:    "retired name with valid order",
			doc:     doc(record(0, "MOD", PortRecord{PortName: "Old", OrderID: intp(1)})),
			reasons: []string{`unknown port name "Old"`},
		},
		{
			name:    "unknown port",
			doc:     doc(record(0, "MOD", PortRecord{PortName: "Z", OrderID: intp(9)}, PortRecord{})),
			reasons: []string{"dropped port unknown to catalog", "neither name nor order index"},
		},
		{
			name:    "duplicate port record",
			doc:     doc(record(0, "MOD", free("A", 1), free("A", 1))),
			reasons: []string{"duplicate port record"},
		},
		{
			name:    "dangling structure",
			doc:     doc(record(0, "MOD", dockedTo("A", 1, 42, "A"))),
			reasons: []string{"missing structure 42"},
			check: func(t *testing.T, b *Blueprint) {
				assert.False(t, b.Port(0, "A").IsDocked())
			},
		},
		{
			name: "dangling port",
			doc: doc(
				record(0, "MOD", dockedTo("A", 1, 1, "Q")),
				record(1, "TIP", free("A", 1)),
			),
			reasons: []string{"missing port TIP#1.Q"},
		},
		{
			name:    "self dock",
			doc:     doc(record(0, "MOD", dockedTo("A", 1, 0, "B"))),
			reasons: []string{"its own structure"},
		},
		{
			name: "port name without structure",
			doc: doc(record(0, "MOD", PortRecord{PortName: "A", OrderID: intp(1), DockedPortName: strp("A")})),
			reasons: []string{"without docked structure"},
		},
		{
			name: "one-sided docking",
			doc: doc(
				record(0, "MOD", dockedTo("A", 1, 1, "A")),
				record(1, "TIP", free("A", 1)),
			),
			reasons: []string{"completed one-sided docking with MOD#0.A"},
			check: func(t *testing.T, b *Blueprint) {
				assert.Equal(t, b.Port(1, "A"), b.Port(0, "A").DockedPort())
				assert.Equal(t, b.Port(0, "A"), b.Port(1, "A").DockedPort())
				assert.False(t, b.GetStructure(1).IsHierarchyRoot())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, repairs, err := Reconstruct(tt.doc, testCatalog(t))
			require.NoError(t, err)
			require.Len(t, repairs, len(tt.reasons), "repairs: %v", repairs)
			for i, want := range tt.reasons {
				assert.Contains(t, repairs[i].String(), want)
			}
			assert.True(t, b.Dirty())
			assert.NoError(t, b.Validate())
			if tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func TestReconstructErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		code errors.Code
	}{
		{"nil document", nil, errors.ErrCodeInvalidInput},
		{"missing id 0", doc(record(1, "MOD"), record(2, "TIP")), errors.ErrCodeMissingRootStructure},
		{"unknown type", doc(record(0, "WARP")), errors.ErrCodeUnknownStructureType},
		{"duplicate id", doc(record(0, "MOD"), record(0, "TIP")), errors.ErrCodeDuplicateStructureID},
		{"missing id", doc(StructureRecord{StructureType: "MOD"}), errors.ErrCodeInvalidFormat},
		{"conflicting partners", doc(
			record(0, "MOD", dockedTo("A", 1, 1, "A")),
			record(1, "TIP", free("A", 1)),
			record(2, "TIP", dockedTo("A", 1, 1, "A")),
		), errors.ErrCodeCorruptDocking},
		{"cycle", doc(
			record(0, "MOD", dockedTo("A", 1, 1, "A"), dockedTo("B", 2, 2, "B")),
			record(1, "MOD", dockedTo("A", 1, 0, "A"), dockedTo("B", 2, 2, "A")),
			record(2, "MOD", dockedTo("A", 1, 1, "B"), dockedTo("B", 2, 0, "B")),
		), errors.ErrCodeCorruptDocking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, err := Reconstruct(tt.doc, testCatalog(t))
			assert.Nil(t, b)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestReconstructEmptyDocument(t *testing.T) {
	b, repairs, err := Reconstruct(NewDocument(), testCatalog(t))
	require.NoError(t, err)
	assert.Empty(t, repairs)
	assert.Zero(t, b.Len())
	assert.Nil(t, b.PrimaryRoot())
	assert.Empty(t, b.Document().Structures)
}

func TestRepairString(t *testing.T) {
	r := Repair{StructureID: 4, Port: "A", Reason: "derived name"}
	assert.Equal(t, "structure 4 port A: derived name", r.String())
	r.Port = ""
	assert.True(t, strings.HasPrefix(r.String(), "structure 4: "))
}
