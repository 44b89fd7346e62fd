package sml

import "testing"

func TestGetProcParameterResponseRoundTrip(t *testing.T) {
	tree := &Tree{
		ParameterName: []byte{1, 0, 96, 1, 0, 255},
		ParameterValue: &ProcParValue{
			Tag:   ProcParValueTagValue,
			Value: &Value{Kind: ValueOctetString, Str: []byte("meter-1")},
		},
		ChildList: []*Tree{
			{ParameterName: []byte{1, 0, 96, 2, 0, 255}},
		},
	}

	body := &MessageBody{
		Tag: TagGetProcParameterResponse,
		GetProcParameterResponse: &GetProcParameterResponse{
			ServerID:      []byte("server"),
			ParameterTree: tree,
		},
	}

	buf := NewWriteBuffer(0)
	body.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseMessageBody(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tag != TagGetProcParameterResponse {
		t.Fatalf("tag = %x", got.Tag)
	}
	gr := got.GetProcParameterResponse
	if string(gr.ServerID) != "server" {
		t.Fatalf("server id = %q", gr.ServerID)
	}
	if gr.ParameterTree.ParameterValue.Value == nil || string(gr.ParameterTree.ParameterValue.Value.Str) != "meter-1" {
		t.Fatalf("tree value mismatch: %+v", gr.ParameterTree.ParameterValue)
	}
	if len(gr.ParameterTree.ChildList) != 1 {
		t.Fatalf("child list len = %d", len(gr.ParameterTree.ChildList))
	}
}

func TestGetProfilePackRequestRoundTrip(t *testing.T) {
	withRaw := true
	req := &GetProfilePackRequest{
		ServerID:    []byte("server"),
		WithRawdata: &withRaw,
		ObjectList:  [][]byte{[]byte("obj1"), []byte("obj2")},
	}

	body := &MessageBody{Tag: TagGetProfilePackRequest, GetProfilePackRequest: req}

	buf := NewWriteBuffer(0)
	body.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseMessageBody(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	gr := got.GetProfilePackRequest
	if gr.WithRawdata == nil || !*gr.WithRawdata {
		t.Fatalf("with_rawdata mismatch: %+v", gr.WithRawdata)
	}
	if len(gr.ObjectList) != 2 || string(gr.ObjectList[0]) != "obj1" || string(gr.ObjectList[1]) != "obj2" {
		t.Fatalf("object list mismatch: %+v", gr.ObjectList)
	}
}

func TestGetProfilePackResponseRoundTrip(t *testing.T) {
	unit := uint8(30)
	scaler := int8(-1)
	resp := &GetProfilePackResponse{
		ServerID: []byte("server"),
		HeaderList: []ProfObjHeaderEntry{
			{ObjName: []byte{1, 0, 1, 8, 0, 255}, Unit: &unit, Scaler: &scaler},
		},
		PeriodList: []ProfObjPeriodEntry{
			{
				ValueList: []ValueEntry{
					{Value: Value{Kind: ValueUnsigned, Num: Number{Value: 42, Width: 2}}},
				},
			},
		},
	}

	body := &MessageBody{Tag: TagGetProfilePackResponse, GetProfilePackResponse: resp}

	buf := NewWriteBuffer(0)
	body.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseMessageBody(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	gr := got.GetProfilePackResponse
	if len(gr.HeaderList) != 1 || *gr.HeaderList[0].Unit != 30 || *gr.HeaderList[0].Scaler != -1 {
		t.Fatalf("header list mismatch: %+v", gr.HeaderList)
	}
	if len(gr.PeriodList) != 1 || len(gr.PeriodList[0].ValueList) != 1 {
		t.Fatalf("period list mismatch: %+v", gr.PeriodList)
	}
	if gr.PeriodList[0].ValueList[0].Value.Num.Value != 42 {
		t.Fatalf("value mismatch: %+v", gr.PeriodList[0].ValueList[0].Value)
	}
}

func TestAttentionResponseRoundTrip(t *testing.T) {
	body := &MessageBody{
		Tag: TagAttentionResponse,
		AttentionResponse: &AttentionResponse{
			ServerID:        []byte("server"),
			AttentionNumber: []byte{0x81, 0x81, 0xC7, 0xC7, 0xFE, 0x00},
		},
	}

	buf := NewWriteBuffer(0)
	body.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseMessageBody(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.AttentionResponse.ServerID) != "server" {
		t.Fatalf("server id mismatch")
	}
}

func TestUnknownMessageBodyTagRejected(t *testing.T) {
	buf := NewWriteBuffer(0)
	buf.WriteTypeLength(TypeList, 2)
	writeNumber(buf, TypeUnsigned, Number{Value: 0x00000601, Width: 4}) // reserved, unused tag
	buf.WriteOptionalSkipped()

	rbuf := NewBuffer(buf.Bytes())
	if _, err := ParseMessageBody(rbuf); err == nil {
		t.Fatal("expected unknown-tag error for unimplemented SetProcParameterResponse")
	}
}
