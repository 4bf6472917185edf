package brs

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/brsio/brs/model"
)

func TestRoundTripEmptySave(t *testing.T) {
	save := model.NewSaveData()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)

	require.Equal(t, save.Header1.Map, got.Header1.Map)
	require.Equal(t, save.Header1.Author.Name, got.Header1.Author.Name)
	require.Empty(t, got.Bricks)
	require.Equal(t, model.CurrentVersion, got.Version)
}

func TestRoundTripSingleProceduralBrick(t *testing.T) {
	save := model.NewSaveData()
	b := model.NewBrick()
	b.Size = model.Size{Kind: model.SizeProcedural, X: 5, Y: 5, Z: 6}
	b.Position = model.Position{X: 100, Y: -200, Z: 300}
	b.Direction = model.YNegative
	b.Rotation = model.Deg180
	save.Bricks = []model.Brick{b}
	save.Header1.BrickCount = 1

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Bricks, 1)
	require.Equal(t, b.Size, got.Bricks[0].Size)
	require.Equal(t, b.Position, got.Bricks[0].Position)
	require.Equal(t, b.Direction, got.Bricks[0].Direction)
	require.Equal(t, b.Rotation, got.Bricks[0].Rotation)
}

func TestRoundTripGridWithUniqueColors(t *testing.T) {
	save := model.NewSaveData()
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			b := model.NewBrick()
			b.Position = model.Position{X: int32(x * 10), Y: int32(y * 10), Z: 0}
			b.Color = model.BrickColor{
				Kind:  model.BrickColorUnique,
				Color: model.Color{R: uint8(x * 20), G: uint8(y * 20), B: 128, A: 255},
			}
			save.Bricks = append(save.Bricks, b)
		}
	}
	save.Header1.BrickCount = uint32(len(save.Bricks))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Bricks, 100)
	for i, b := range save.Bricks {
		require.Equal(t, b.Position, got.Bricks[i].Position)
		require.Equal(t, model.BrickColorUnique, got.Bricks[i].Color.Kind)
		require.Equal(t, b.Color.Color.R, got.Bricks[i].Color.Color.R)
		require.Equal(t, b.Color.Color.G, got.Bricks[i].Color.Color.G)
		require.Equal(t, b.Color.Color.B, got.Bricks[i].Color.Color.B)
	}
}

func TestRoundTripUCS2Description(t *testing.T) {
	save := model.NewSaveData()
	save.Header1.Description = "セーブファイルの説明"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, save.Header1.Description, got.Header1.Description)
}

func TestRoundTripUnknownPreview(t *testing.T) {
	save := model.NewSaveData()
	save.Preview = model.Preview{Kind: model.PreviewUnknown, Tag: 9, Data: []byte{1, 2, 3, 4}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, model.PreviewUnknown, got.Preview.Kind)
	require.Equal(t, byte(9), got.Preview.Tag)
	require.Equal(t, []byte{1, 2, 3, 4}, got.Preview.Data)
}

func TestRoundTripComponent(t *testing.T) {
	save := model.NewSaveData()
	b0 := model.NewBrick()
	b0.Components["BCD_Interact"] = map[string]model.UnrealType{
		"bInteractEnabled": {Kind: model.UnrealBoolean, Bool: true},
		"Message":          {Kind: model.UnrealString, Str: "Press E"},
	}
	b1 := model.NewBrick()
	b1.Components["BCD_Interact"] = map[string]model.UnrealType{
		"bInteractEnabled": {Kind: model.UnrealBoolean, Bool: false},
		"Message":          {Kind: model.UnrealString, Str: ""},
	}
	save.Bricks = []model.Brick{b0, b1}
	save.Header1.BrickCount = 2
	save.Components["BCD_Interact"] = model.Component{
		Version:      1,
		BrickIndices: []uint32{0, 1},
		Properties: []model.PropertyDef{
			{Name: "bInteractEnabled", Type: "Boolean"},
			{Name: "Message", Type: "String"},
		},
	}
	require.NoError(t, save.Validate())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	comp, ok := got.Components["BCD_Interact"]
	require.True(t, ok)
	require.Equal(t, int32(1), comp.Version)
	require.Equal(t, []model.PropertyDef{
		{Name: "bInteractEnabled", Type: "Boolean"},
		{Name: "Message", Type: "String"},
	}, comp.Properties)

	require.Equal(t, true, got.Bricks[0].Components["BCD_Interact"]["bInteractEnabled"].Bool)
	require.Equal(t, "Press E", got.Bricks[0].Components["BCD_Interact"]["Message"].Str)
	require.Equal(t, false, got.Bricks[1].Components["BCD_Interact"]["bInteractEnabled"].Bool)
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewBufferString("not a save file"))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("BRS")
	buf.Write([]byte{0xff, 0xff})
	_, err := Read(&buf)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestReaderStepwiseReadsEachSection(t *testing.T) {
	save := model.NewSaveData()
	b := model.NewBrick()
	b.Position = model.Position{X: 1, Y: 2, Z: 3}
	save.Bricks = []model.Brick{b}
	save.Header1.BrickCount = 1

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, model.CurrentVersion, rd.Version)

	header1, err := rd.ReadHeader1()
	require.NoError(t, err)
	require.Equal(t, save.Header1.Map, header1.Map)

	_, err = rd.ReadHeader2()
	require.NoError(t, err)

	_, err = rd.ReadPreview()
	require.NoError(t, err)

	bricks, err := rd.ReadBricks()
	require.NoError(t, err)
	require.Len(t, bricks, 1)
	require.Equal(t, b.Position, bricks[0].Position)

	_, err = rd.ReadComponents(bricks)
	require.NoError(t, err)
}

func TestReaderRejectsOutOfOrderCalls(t *testing.T) {
	save := model.NewSaveData()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, err = rd.ReadHeader2()
	require.ErrorIs(t, err, ErrBadSectionReadOrder)

	_, err = rd.ReadBricks()
	require.ErrorIs(t, err, ErrBadSectionReadOrder)

	_, err = rd.ReadHeader1()
	require.NoError(t, err)

	_, err = rd.ReadHeader1()
	require.ErrorIs(t, err, ErrBadSectionReadOrder)
}

func TestReaderSkipHeadersAndPreview(t *testing.T) {
	save := model.NewSaveData()
	b := model.NewBrick()
	save.Bricks = []model.Brick{b}
	save.Header1.BrickCount = 1
	save.Preview = model.Preview{Kind: model.PreviewUnknown, Tag: 9, Data: []byte{1, 2, 3, 4}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.NoError(t, rd.SkipHeader1())
	require.NoError(t, rd.SkipHeader2())
	require.NoError(t, rd.SkipPreview())

	bricks, err := rd.ReadBricks()
	require.NoError(t, err)
	require.Len(t, bricks, 0)
}

func TestReadAllSkipPreviewOmitsPreviewData(t *testing.T) {
	save := model.NewSaveData()
	save.Preview = model.Preview{Kind: model.PreviewUnknown, Tag: 9, Data: []byte{1, 2, 3, 4}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	got, err := rd.ReadAllSkipPreview()
	require.NoError(t, err)
	require.Equal(t, model.Preview{}, got.Preview)
}

func TestWriteWithDisableCompressionRoundTrips(t *testing.T) {
	save := model.NewSaveData()
	save.Header1.Description = "a highly compressible description: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	var compressed, raw bytes.Buffer
	require.NoError(t, Write(&compressed, &save))
	require.NoError(t, Write(&raw, &save, WithDisableCompression()))

	require.Greater(t, raw.Len(), compressed.Len())

	got, err := Read(&raw)
	require.NoError(t, err)
	require.Equal(t, save.Header1.Description, got.Header1.Description)
}

func TestRoundTripPreservesAuthorUUID(t *testing.T) {
	save := model.NewSaveData()
	save.Header1.Author.ID = uuid.New()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &save))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, save.Header1.Author.ID, got.Header1.Author.ID)
}
