package sml

// Message body tag values. SetProcParameterResponse (0x00000601) is
// declared in the reference but never dispatched or referenced anywhere;
// per the spec this message type does not exist on the wire and is
// deliberately NOT implemented here — only documented, so a reader
// doesn't wonder whether it was forgotten.
const (
	TagOpenRequest             = 0x00000100
	TagOpenResponse            = 0x00000101
	TagCloseRequest            = 0x00000200
	TagCloseResponse           = 0x00000201
	TagGetProfilePackRequest   = 0x00000300
	TagGetProfilePackResponse  = 0x00000301
	TagGetProfileListRequest   = 0x00000400
	TagGetProfileListResponse  = 0x00000401
	TagGetProcParameterRequest = 0x00000500
	TagGetProcParameterResponse = 0x00000501
	TagSetProcParameterRequest = 0x00000600
	// TagSetProcParameterResponse = 0x00000601 — reserved, unused, not implemented.
	TagGetListRequest    = 0x00000700
	TagGetListResponse   = 0x00000701
	TagAttentionResponse = 0x0000FF01
)

// MessageBody is the {tag, payload} 2-tuple. Exactly one of the typed
// fields is populated, selected by Tag — a Go sum type in place of the
// reference's type-byte-plus-Any payload.
type MessageBody struct {
	Tag uint32

	OpenRequest             *OpenRequest
	OpenResponse            *OpenResponse
	CloseRequest             *CloseRequest
	CloseResponse            *CloseResponse
	GetProfilePackRequest    *GetProfilePackRequest
	GetProfilePackResponse   *GetProfilePackResponse
	GetProfileListRequest    *GetProfilePackRequest // shares GetProfilePackRequest's shape, per spec
	GetProfileListResponse   *GetProfileListResponse
	GetProcParameterRequest  *GetProcParameterRequest
	GetProcParameterResponse *GetProcParameterResponse
	SetProcParameterRequest  *SetProcParameterRequest
	GetListRequest           *GetListRequest
	GetListResponse          *GetListResponse
	AttentionResponse        *AttentionResponse
}

// ParseMessageBody reads the 2-tuple {tag:u32, payload} and dispatches to
// one of the thirteen payload shapes. Unknown tags return ErrUnknownTag
// without consuming the payload. FileParse treats that like any other
// message error: it logs a warning and stops, returning only the messages
// before the unknown one; later messages in the same file are not read.
func ParseMessageBody(buf *Buffer) (*MessageBody, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if typ != TypeList {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected message body tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "message body must have 2 fields")
	}

	tagU, err := parseUnsignedField(buf)
	if err != nil {
		return nil, err
	}
	tag := uint32(tagU)
	body := &MessageBody{Tag: tag}

	switch tag {
	case TagOpenRequest:
		body.OpenRequest, err = parseOpenRequest(buf)
	case TagOpenResponse:
		body.OpenResponse, err = parseOpenResponse(buf)
	case TagCloseRequest:
		body.CloseRequest, err = parseCloseRequest(buf)
	case TagCloseResponse:
		body.CloseResponse, err = parseCloseResponse(buf)
	case TagGetProfilePackRequest:
		body.GetProfilePackRequest, err = parseGetProfilePackRequest(buf)
	case TagGetProfilePackResponse:
		body.GetProfilePackResponse, err = parseGetProfilePackResponse(buf)
	case TagGetProfileListRequest:
		body.GetProfileListRequest, err = parseGetProfilePackRequest(buf)
	case TagGetProfileListResponse:
		body.GetProfileListResponse, err = parseGetProfileListResponse(buf)
	case TagGetProcParameterRequest:
		body.GetProcParameterRequest, err = parseGetProcParameterRequest(buf)
	case TagGetProcParameterResponse:
		body.GetProcParameterResponse, err = parseGetProcParameterResponse(buf)
	case TagSetProcParameterRequest:
		body.SetProcParameterRequest, err = parseSetProcParameterRequest(buf)
	case TagGetListRequest:
		body.GetListRequest, err = parseGetListRequest(buf)
	case TagGetListResponse:
		body.GetListResponse, err = parseGetListResponse(buf)
	case TagAttentionResponse:
		body.AttentionResponse, err = parseAttentionResponse(buf)
	default:
		return nil, newErr(ErrUnknownTag, buf.Cursor(), "message body tag not implemented")
	}
	if err != nil {
		return nil, err
	}

	return body, nil
}

// Write emits b's tag and whichever payload is populated.
func (b *MessageBody) Write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 2)
	writeNumber(buf, TypeUnsigned, Number{Value: int64(b.Tag), Width: 4})

	switch b.Tag {
	case TagOpenRequest:
		b.OpenRequest.write(buf)
	case TagOpenResponse:
		b.OpenResponse.write(buf)
	case TagCloseRequest:
		b.CloseRequest.write(buf)
	case TagCloseResponse:
		b.CloseResponse.write(buf)
	case TagGetProfilePackRequest:
		b.GetProfilePackRequest.write(buf)
	case TagGetProfilePackResponse:
		b.GetProfilePackResponse.write(buf)
	case TagGetProfileListRequest:
		b.GetProfileListRequest.write(buf)
	case TagGetProfileListResponse:
		b.GetProfileListResponse.write(buf)
	case TagGetProcParameterRequest:
		b.GetProcParameterRequest.write(buf)
	case TagGetProcParameterResponse:
		b.GetProcParameterResponse.write(buf)
	case TagSetProcParameterRequest:
		b.SetProcParameterRequest.write(buf)
	case TagGetListRequest:
		b.GetListRequest.write(buf)
	case TagGetListResponse:
		b.GetListResponse.write(buf)
	case TagAttentionResponse:
		b.AttentionResponse.write(buf)
	}
}

// --- Open / Close ---------------------------------------------------------

// OpenRequest is the 7-tuple SML_PublicOpen.Req.
type OpenRequest struct {
	Codepage   []byte
	ClientID   []byte
	ReqFileID  []byte
	ServerID   []byte
	Username   []byte
	Password   []byte
	SMLVersion *uint8
}

func parseOpenRequest(buf *Buffer) (*OpenRequest, error) {
	if err := expectTuple(buf, 7); err != nil {
		return nil, err
	}
	r := &OpenRequest{}
	var err error
	for _, dst := range []*[]byte{&r.Codepage, &r.ClientID, &r.ReqFileID, &r.ServerID, &r.Username, &r.Password} {
		*dst, err = parseOptionalOctetString(buf)
		if err != nil {
			return nil, err
		}
	}
	r.SMLVersion, err = parseOptionalU8(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OpenRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 7)
	for _, s := range [][]byte{r.Codepage, r.ClientID, r.ReqFileID, r.ServerID, r.Username, r.Password} {
		writeOptionalOctetString(buf, s)
	}
	writeOptionalU8(buf, r.SMLVersion)
}

// OpenResponse is the 6-tuple SML_PublicOpen.Res.
type OpenResponse struct {
	Codepage   []byte
	ClientID   []byte
	ReqFileID  []byte
	ServerID   []byte
	RefTime    Time
	SMLVersion *uint8
}

func parseOpenResponse(buf *Buffer) (*OpenResponse, error) {
	if err := expectTuple(buf, 6); err != nil {
		return nil, err
	}
	r := &OpenResponse{}
	var err error
	for _, dst := range []*[]byte{&r.Codepage, &r.ClientID, &r.ReqFileID, &r.ServerID} {
		*dst, err = parseOptionalOctetString(buf)
		if err != nil {
			return nil, err
		}
	}
	r.RefTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.SMLVersion, err = parseOptionalU8(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OpenResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 6)
	for _, s := range [][]byte{r.Codepage, r.ClientID, r.ReqFileID, r.ServerID} {
		writeOptionalOctetString(buf, s)
	}
	r.RefTime.Write(buf)
	writeOptionalU8(buf, r.SMLVersion)
}

// CloseRequest is the 1-tuple SML_PublicClose.Req.
type CloseRequest struct {
	GlobalSignature []byte
}

func parseCloseRequest(buf *Buffer) (*CloseRequest, error) {
	if err := expectTuple(buf, 1); err != nil {
		return nil, err
	}
	sig, err := parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	return &CloseRequest{GlobalSignature: sig}, nil
}

func (r *CloseRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 1)
	writeOptionalOctetString(buf, r.GlobalSignature)
}

// CloseResponse is the 1-tuple SML_PublicClose.Res.
type CloseResponse struct {
	GlobalSignature []byte
}

func parseCloseResponse(buf *Buffer) (*CloseResponse, error) {
	if err := expectTuple(buf, 1); err != nil {
		return nil, err
	}
	sig, err := parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	return &CloseResponse{GlobalSignature: sig}, nil
}

func (r *CloseResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 1)
	writeOptionalOctetString(buf, r.GlobalSignature)
}

// --- GetList ---------------------------------------------------------------

// GetListRequest is the 5-tuple SML_GetList.Req.
type GetListRequest struct {
	ClientID []byte
	ServerID []byte
	Username []byte
	Password []byte
	ListName []byte
}

func parseGetListRequest(buf *Buffer) (*GetListRequest, error) {
	if err := expectTuple(buf, 5); err != nil {
		return nil, err
	}
	r := &GetListRequest{}
	var err error
	for _, dst := range []*[]byte{&r.ClientID, &r.ServerID, &r.Username, &r.Password, &r.ListName} {
		*dst, err = parseOptionalOctetString(buf)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *GetListRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 5)
	for _, s := range [][]byte{r.ClientID, r.ServerID, r.Username, r.Password, r.ListName} {
		writeOptionalOctetString(buf, s)
	}
}

// GetListResponse is the 7-tuple SML_GetList.Res.
type GetListResponse struct {
	ClientID      []byte
	ServerID      []byte
	ListName      []byte
	ActSensorTime Time
	ValList       *List
	ListSignature []byte
	ActGatewayTime Time
}

func parseGetListResponse(buf *Buffer) (*GetListResponse, error) {
	if err := expectTuple(buf, 7); err != nil {
		return nil, err
	}
	r := &GetListResponse{}
	var err error
	r.ClientID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ListName, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ActSensorTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.ValList, err = ParseList(buf)
	if err != nil {
		return nil, err
	}
	r.ListSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ActGatewayTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetListResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 7)
	writeOptionalOctetString(buf, r.ClientID)
	writeOptionalOctetString(buf, r.ServerID)
	writeOptionalOctetString(buf, r.ListName)
	r.ActSensorTime.Write(buf)
	r.ValList.Write(buf)
	writeOptionalOctetString(buf, r.ListSignature)
	r.ActGatewayTime.Write(buf)
}

// --- GetProcParameter --------------------------------------------------------

// GetProcParameterRequest is the 5-tuple SML_GetProcParameter.Req.
type GetProcParameterRequest struct {
	ServerID          []byte
	Username          []byte
	Password          []byte
	ParameterTreePath TreePath
	Attribute         []byte
}

func parseGetProcParameterRequest(buf *Buffer) (*GetProcParameterRequest, error) {
	if err := expectTuple(buf, 5); err != nil {
		return nil, err
	}
	r := &GetProcParameterRequest{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Username, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Password, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}
	r.Attribute, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetProcParameterRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 5)
	writeOptionalOctetString(buf, r.ServerID)
	writeOptionalOctetString(buf, r.Username)
	writeOptionalOctetString(buf, r.Password)
	r.ParameterTreePath.Write(buf)
	writeOptionalOctetString(buf, r.Attribute)
}

// GetProcParameterResponse is the 3-tuple SML_GetProcParameter.Res.
type GetProcParameterResponse struct {
	ServerID          []byte
	ParameterTreePath TreePath
	ParameterTree     *Tree
}

func parseGetProcParameterResponse(buf *Buffer) (*GetProcParameterResponse, error) {
	if err := expectTuple(buf, 3); err != nil {
		return nil, err
	}
	r := &GetProcParameterResponse{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTree, err = ParseTree(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetProcParameterResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 3)
	writeOptionalOctetString(buf, r.ServerID)
	r.ParameterTreePath.Write(buf)
	r.ParameterTree.Write(buf)
}

// SetProcParameterRequest is the 5-tuple SML_SetProcParameter.Req.
type SetProcParameterRequest struct {
	ServerID          []byte
	Username          []byte
	Password          []byte
	ParameterTreePath TreePath
	ParameterTree     *Tree
}

func parseSetProcParameterRequest(buf *Buffer) (*SetProcParameterRequest, error) {
	if err := expectTuple(buf, 5); err != nil {
		return nil, err
	}
	r := &SetProcParameterRequest{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Username, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Password, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTree, err = ParseTree(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SetProcParameterRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 5)
	writeOptionalOctetString(buf, r.ServerID)
	writeOptionalOctetString(buf, r.Username)
	writeOptionalOctetString(buf, r.Password)
	r.ParameterTreePath.Write(buf)
	r.ParameterTree.Write(buf)
}

// --- AttentionResponse -------------------------------------------------------

// AttentionResponse is the 4-tuple SML_Attention.Res.
type AttentionResponse struct {
	ServerID          []byte
	AttentionNumber   []byte
	AttentionMessage  []byte
	AttentionDetails  *Tree
}

func parseAttentionResponse(buf *Buffer) (*AttentionResponse, error) {
	if err := expectTuple(buf, 4); err != nil {
		return nil, err
	}
	r := &AttentionResponse{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.AttentionNumber, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.AttentionMessage, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.AttentionDetails, err = ParseTree(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *AttentionResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 4)
	writeOptionalOctetString(buf, r.ServerID)
	writeOptionalOctetString(buf, r.AttentionNumber)
	writeOptionalOctetString(buf, r.AttentionMessage)
	r.AttentionDetails.Write(buf)
}

// --- GetProfilePack / GetProfileList -----------------------------------------

// ObjReqEntry is a single entry of the object-request list inside
// GetProfilePackRequest, a plain octet string — kept as a slice of
// entries rather than the reference's singly-linked SmlObjReqEntryList.
type ObjReqEntry = []byte

// GetProfilePackRequest is the 9-tuple SML_GetProfilePack.Req. Per the
// spec, GetProfileListRequest shares this exact shape.
type GetProfilePackRequest struct {
	ServerID          []byte
	Username          []byte
	Password          []byte
	WithRawdata       *bool
	BeginTime         Time
	EndTime           Time
	ParameterTreePath TreePath
	ObjectList        [][]byte
	DasDetails        *Tree
}

func parseGetProfilePackRequest(buf *Buffer) (*GetProfilePackRequest, error) {
	if err := expectTuple(buf, 9); err != nil {
		return nil, err
	}
	r := &GetProfilePackRequest{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Username, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.Password, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}

	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if !skipped {
		b, err := ParseBoolean(buf)
		if err != nil {
			return nil, err
		}
		r.WithRawdata = &b
	}

	r.BeginTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.EndTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}

	seq, err := ParseSequence(buf, ParseOctetString)
	if err != nil {
		return nil, err
	}
	if seq != nil {
		r.ObjectList = seq.Items
	}

	r.DasDetails, err = ParseTree(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetProfilePackRequest) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 9)
	writeOptionalOctetString(buf, r.ServerID)
	writeOptionalOctetString(buf, r.Username)
	writeOptionalOctetString(buf, r.Password)
	if r.WithRawdata == nil {
		buf.WriteOptionalSkipped()
	} else {
		WriteBoolean(buf, *r.WithRawdata)
	}
	r.BeginTime.Write(buf)
	r.EndTime.Write(buf)
	r.ParameterTreePath.Write(buf)
	if r.ObjectList == nil {
		buf.WriteOptionalSkipped()
	} else {
		seq := &Sequence[[]byte]{Items: r.ObjectList}
		WriteSequence(buf, seq, WriteOctetString)
	}
	r.DasDetails.Write(buf)
}

// ProfObjHeaderEntry is the 3-tuple {obj-name, unit, scaler} describing
// one column of a profile pack.
type ProfObjHeaderEntry struct {
	ObjName []byte
	Unit    *uint8
	Scaler  *int8
}

func parseProfObjHeaderEntry(buf *Buffer) (ProfObjHeaderEntry, error) {
	var e ProfObjHeaderEntry
	if err := expectTuple(buf, 3); err != nil {
		return e, err
	}
	var err error
	e.ObjName, err = ParseOctetString(buf)
	if err != nil {
		return e, err
	}
	e.Unit, err = parseOptionalU8(buf)
	if err != nil {
		return e, err
	}
	e.Scaler, err = parseOptionalI8(buf)
	if err != nil {
		return e, err
	}
	return e, nil
}

func writeProfObjHeaderEntry(buf *Buffer, e ProfObjHeaderEntry) {
	buf.WriteTypeLength(TypeList, 3)
	WriteOctetString(buf, e.ObjName)
	writeOptionalU8(buf, e.Unit)
	writeOptionalI8(buf, e.Scaler)
}

// ValueEntry is the 2-tuple {value, value-signature} inside a profile
// pack period entry's value list.
type ValueEntry struct {
	Value          Value
	ValueSignature []byte
}

func parseValueEntry(buf *Buffer) (ValueEntry, error) {
	var e ValueEntry
	if err := expectTuple(buf, 2); err != nil {
		return e, err
	}
	var err error
	e.Value, err = ParseValue(buf)
	if err != nil {
		return e, err
	}
	e.ValueSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return e, err
	}
	return e, nil
}

func writeValueEntry(buf *Buffer, e ValueEntry) {
	buf.WriteTypeLength(TypeList, 2)
	e.Value.Write(buf)
	writeOptionalOctetString(buf, e.ValueSignature)
}

// ProfObjPeriodEntry is the 4-tuple {val-time, status, value-list,
// period-signature}.
type ProfObjPeriodEntry struct {
	ValTime          Time
	Status           *uint64
	ValueList        []ValueEntry
	PeriodSignature  []byte
}

func parseProfObjPeriodEntry(buf *Buffer) (ProfObjPeriodEntry, error) {
	var e ProfObjPeriodEntry
	if err := expectTuple(buf, 4); err != nil {
		return e, err
	}
	var err error
	e.ValTime, err = ParseTime(buf)
	if err != nil {
		return e, err
	}
	e.Status, err = parseOptionalU64(buf)
	if err != nil {
		return e, err
	}
	seq, err := ParseSequence(buf, parseValueEntry)
	if err != nil {
		return e, err
	}
	if seq != nil {
		e.ValueList = seq.Items
	}
	e.PeriodSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return e, err
	}
	return e, nil
}

func writeProfObjPeriodEntry(buf *Buffer, e ProfObjPeriodEntry) {
	buf.WriteTypeLength(TypeList, 4)
	e.ValTime.Write(buf)
	writeOptionalU64(buf, e.Status)
	seq := &Sequence[ValueEntry]{Items: e.ValueList}
	WriteSequence(buf, seq, writeValueEntry)
	writeOptionalOctetString(buf, e.PeriodSignature)
}

// GetProfilePackResponse is the 8-tuple SML_GetProfilePack.Res.
type GetProfilePackResponse struct {
	ServerID          []byte
	ActTime           Time
	RegPeriod         *uint32
	ParameterTreePath TreePath
	HeaderList        []ProfObjHeaderEntry
	PeriodList        []ProfObjPeriodEntry
	Rawdata           []byte
	ProfileSignature  []byte
}

func parseGetProfilePackResponse(buf *Buffer) (*GetProfilePackResponse, error) {
	if err := expectTuple(buf, 8); err != nil {
		return nil, err
	}
	r := &GetProfilePackResponse{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ActTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.RegPeriod, err = parseOptionalU32(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}
	headerSeq, err := ParseSequence(buf, parseProfObjHeaderEntry)
	if err != nil {
		return nil, err
	}
	if headerSeq != nil {
		r.HeaderList = headerSeq.Items
	}
	periodSeq, err := ParseSequence(buf, parseProfObjPeriodEntry)
	if err != nil {
		return nil, err
	}
	if periodSeq != nil {
		r.PeriodList = periodSeq.Items
	}
	r.Rawdata, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ProfileSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetProfilePackResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 8)
	writeOptionalOctetString(buf, r.ServerID)
	r.ActTime.Write(buf)
	writeOptionalU32(buf, r.RegPeriod)
	r.ParameterTreePath.Write(buf)
	headerSeq := &Sequence[ProfObjHeaderEntry]{Items: r.HeaderList}
	WriteSequence(buf, headerSeq, writeProfObjHeaderEntry)
	periodSeq := &Sequence[ProfObjPeriodEntry]{Items: r.PeriodList}
	WriteSequence(buf, periodSeq, writeProfObjPeriodEntry)
	writeOptionalOctetString(buf, r.Rawdata)
	writeOptionalOctetString(buf, r.ProfileSignature)
}

// GetProfileListResponse is the 9-tuple SML_GetProfileList.Res.
type GetProfileListResponse struct {
	ServerID          []byte
	ActTime           Time
	RegPeriod         *uint32
	ParameterTreePath TreePath
	ValTime           Time
	Status            *uint64
	PeriodList        []ProfObjPeriodEntry
	Rawdata           []byte
	PeriodSignature   []byte
}

func parseGetProfileListResponse(buf *Buffer) (*GetProfileListResponse, error) {
	if err := expectTuple(buf, 9); err != nil {
		return nil, err
	}
	r := &GetProfileListResponse{}
	var err error
	r.ServerID, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.ActTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.RegPeriod, err = parseOptionalU32(buf)
	if err != nil {
		return nil, err
	}
	r.ParameterTreePath, err = ParseTreePath(buf)
	if err != nil {
		return nil, err
	}
	r.ValTime, err = ParseTime(buf)
	if err != nil {
		return nil, err
	}
	r.Status, err = parseOptionalU64(buf)
	if err != nil {
		return nil, err
	}
	periodSeq, err := ParseSequence(buf, parseProfObjPeriodEntry)
	if err != nil {
		return nil, err
	}
	if periodSeq != nil {
		r.PeriodList = periodSeq.Items
	}
	r.Rawdata, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	r.PeriodSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetProfileListResponse) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 9)
	writeOptionalOctetString(buf, r.ServerID)
	r.ActTime.Write(buf)
	writeOptionalU32(buf, r.RegPeriod)
	r.ParameterTreePath.Write(buf)
	r.ValTime.Write(buf)
	writeOptionalU64(buf, r.Status)
	seq := &Sequence[ProfObjPeriodEntry]{Items: r.PeriodList}
	WriteSequence(buf, seq, writeProfObjPeriodEntry)
	writeOptionalOctetString(buf, r.Rawdata)
	writeOptionalOctetString(buf, r.PeriodSignature)
}

// --- shared helpers ----------------------------------------------------------

func expectTuple(buf *Buffer, arity int) error {
	typ, err := buf.PeekType()
	if err != nil {
		return err
	}
	if typ != TypeList {
		return newErr(ErrTypeMismatch, buf.Cursor(), "expected tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return err
	}
	if n != arity {
		return newErr(ErrLengthMismatch, buf.Cursor(), "wrong tuple arity")
	}
	return nil
}

func writeOptionalOctetString(buf *Buffer, s []byte) {
	if len(s) == 0 {
		buf.WriteOptionalSkipped()
		return
	}
	WriteOctetString(buf, s)
}

func parseOptionalU8(buf *Buffer) (*uint8, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil || skipped {
		return nil, err
	}
	u, err := parseUnsignedField(buf)
	if err != nil {
		return nil, err
	}
	v := uint8(u)
	return &v, nil
}

func writeOptionalU8(buf *Buffer, v *uint8) {
	if v == nil {
		buf.WriteOptionalSkipped()
		return
	}
	writeNumber(buf, TypeUnsigned, Number{Value: int64(*v), Width: 1})
}

func parseOptionalI8(buf *Buffer) (*int8, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil || skipped {
		return nil, err
	}
	typ, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if typ != TypeInteger {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected signed integer")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	num, err := parseNumber(buf, n, true)
	if err != nil {
		return nil, err
	}
	v := int8(num.Value)
	return &v, nil
}

func writeOptionalI8(buf *Buffer, v *int8) {
	if v == nil {
		buf.WriteOptionalSkipped()
		return
	}
	writeNumber(buf, TypeInteger, Number{Value: int64(*v), Width: 1, Signed: true})
}

func parseOptionalU32(buf *Buffer) (*uint32, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil || skipped {
		return nil, err
	}
	u, err := parseUnsignedField(buf)
	if err != nil {
		return nil, err
	}
	v := uint32(u)
	return &v, nil
}

func writeOptionalU32(buf *Buffer, v *uint32) {
	if v == nil {
		buf.WriteOptionalSkipped()
		return
	}
	writeNumber(buf, TypeUnsigned, Number{Value: int64(*v), Width: 4})
}

func parseOptionalU64(buf *Buffer) (*uint64, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil || skipped {
		return nil, err
	}
	u, err := parseUnsignedField(buf)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func writeOptionalU64(buf *Buffer, v *uint64) {
	if v == nil {
		buf.WriteOptionalSkipped()
		return
	}
	writeNumber(buf, TypeUnsigned, Number{Value: int64(*v), Width: 8})
}
