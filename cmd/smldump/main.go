// smldump reads an SML file (raw bytes, not transport-framed) and prints
// each message in a human-readable form: its transaction id and tag, a
// summary line for its body, and one line per list entry or tree node.
//
// Usage:
//
//	smldump [-f file] [-t format]
//
// With no -f, reads stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/mbenders/go-sml/sml"
)

func main() {
	var inputFile = pflag.StringP("file", "f", "", "SML file to read.  Defaults to stdin.")
	var timeFormat = pflag.StringP("time-format", "t", "%Y-%m-%d %H:%M:%S", "strftime format for SML Time values.")
	var quiet = pflag.BoolP("quiet", "q", false, "Suppress per-message separators.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "smldump - decode and pretty-print an SML file.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: smldump [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	formatter, err := strftime.New(*timeFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smldump: invalid -t format: %s\n", err)
		os.Exit(1)
	}

	var r io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "smldump: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		fmt.Fprintf(os.Stderr, "smldump: read error: %s\n", err)
		os.Exit(1)
	}

	file, err := sml.FileParse(data)
	if err != nil {
		// FileParse already logged the details via sml.Logger; a partial
		// file is still worth printing.
		fmt.Fprintf(os.Stderr, "smldump: file truncated or malformed, printing what was recovered\n")
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for i, msg := range file.Messages {
		if !*quiet && i > 0 {
			fmt.Fprintln(w, "---")
		}
		printMessage(w, &msg, formatter)
	}

	if err != nil {
		os.Exit(1)
	}
}

func printMessage(w io.Writer, msg *sml.Message, formatter *strftime.Strftime) {
	fmt.Fprintf(w, "transaction-id: %s\n", sml.ToHexString(msg.TransactionID, false))
	if msg.Body == nil {
		fmt.Fprintf(w, "  (no body)\n")
		return
	}
	fmt.Fprintf(w, "tag: 0x%08x\n", msg.Body.Tag)

	switch {
	case msg.Body.OpenRequest != nil:
		r := msg.Body.OpenRequest
		fmt.Fprintf(w, "  OpenRequest clientId=%s reqFileId=%s\n",
			sml.ToHexString(r.ClientID, true), sml.ToHexString(r.ReqFileID, false))
	case msg.Body.OpenResponse != nil:
		r := msg.Body.OpenResponse
		fmt.Fprintf(w, "  OpenResponse serverId=%s reqFileId=%s\n",
			sml.ToHexString(r.ServerID, false), sml.ToHexString(r.ReqFileID, false))
	case msg.Body.CloseRequest != nil:
		fmt.Fprintf(w, "  CloseRequest\n")
	case msg.Body.CloseResponse != nil:
		fmt.Fprintf(w, "  CloseResponse\n")
	case msg.Body.GetListRequest != nil:
		r := msg.Body.GetListRequest
		fmt.Fprintf(w, "  GetListRequest listName=%s\n", sml.ToHexString(r.ListName, true))
	case msg.Body.GetListResponse != nil:
		printGetListResponse(w, msg.Body.GetListResponse, formatter)
	case msg.Body.GetProcParameterRequest != nil:
		r := msg.Body.GetProcParameterRequest
		fmt.Fprintf(w, "  GetProcParameterRequest parameterTreePath=%s\n", formatTreePath(r.ParameterTreePath))
	case msg.Body.GetProcParameterResponse != nil:
		r := msg.Body.GetProcParameterResponse
		fmt.Fprintf(w, "  GetProcParameterResponse serverId=%s\n", sml.ToHexString(r.ServerID, false))
		printTree(w, r.ParameterTree, 2)
	case msg.Body.SetProcParameterRequest != nil:
		fmt.Fprintf(w, "  SetProcParameterRequest\n")
	case msg.Body.GetProfilePackRequest != nil:
		fmt.Fprintf(w, "  GetProfilePackRequest\n")
	case msg.Body.GetProfilePackResponse != nil:
		fmt.Fprintf(w, "  GetProfilePackResponse (%d header, %d period entries)\n",
			len(msg.Body.GetProfilePackResponse.HeaderList), len(msg.Body.GetProfilePackResponse.PeriodList))
	case msg.Body.GetProfileListRequest != nil:
		fmt.Fprintf(w, "  GetProfileListRequest\n")
	case msg.Body.GetProfileListResponse != nil:
		fmt.Fprintf(w, "  GetProfileListResponse (%d entries)\n", len(msg.Body.GetProfileListResponse.PeriodList))
	case msg.Body.AttentionResponse != nil:
		r := msg.Body.AttentionResponse
		fmt.Fprintf(w, "  AttentionResponse number=%s\n", sml.ToHexString(r.AttentionNumber, false))
	default:
		fmt.Fprintf(w, "  (unrecognized body)\n")
	}
}

func printGetListResponse(w io.Writer, r *sml.GetListResponse, formatter *strftime.Strftime) {
	fmt.Fprintf(w, "  GetListResponse clientId=%s serverId=%s listName=%s actTime=%s\n",
		sml.ToHexString(r.ClientID, true), sml.ToHexString(r.ServerID, false),
		sml.ToHexString(r.ListName, true), formatTime(r.ActSensorTime, formatter))
	if r.ValList == nil {
		return
	}
	for _, e := range r.ValList.Entries {
		fmt.Fprintf(w, "    %s = %s\n", sml.ToHexString(e.ObjName, true), formatValue(e.Value))
	}
}

func formatValue(v sml.Value) string {
	switch v.Kind {
	case sml.ValueOctetString:
		return sml.ToHexString(v.Str, true)
	case sml.ValueBoolean:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return fmt.Sprintf("%d", v.Num.Value)
	}
}

func formatTime(t sml.Time, formatter *strftime.Strftime) string {
	if t.IsZero() {
		return "(none)"
	}
	if t.Tag != sml.TimeTimestamp {
		return fmt.Sprintf("%d (sec-index)", t.Value)
	}
	return formatter.FormatString(time.Unix(int64(t.Value), 0).UTC())
}

func formatTreePath(p sml.TreePath) string {
	if p.Path == nil {
		return "(none)"
	}
	out := ""
	for i, e := range p.Path.Items {
		if i > 0 {
			out += "/"
		}
		out += sml.ToHexString(e, true)
	}
	return out
}

func printTree(w io.Writer, t *sml.Tree, indent int) {
	if t == nil {
		return
	}
	pad := ""
	for i := 0; i < indent; i++ {
		pad += " "
	}
	fmt.Fprintf(w, "%s%s\n", pad, sml.ToHexString(t.ParameterName, true))
	for _, c := range t.ChildList {
		printTree(w, c, indent+2)
	}
}
