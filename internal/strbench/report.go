package strbench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/iancoleman/strcase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 리포트 형식
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// BenchmarkName Strategy 이름과 크기로 벤치마크 이름을 만듭니다.
//
//	BenchmarkName("string concatenation", 64) // "BenchmarkStringConcatenation/64"
func BenchmarkName(strategy string, size int) string {
	return "Benchmark" + strcase.ToCamel(strategy) + "/" + strconv.Itoa(size)
}

// row 리포트 한 줄에 해당하는 값입니다.
type row struct {
	Name        string  `json:"name"`
	Strategy    string  `json:"strategy"`
	Size        int     `json:"size"`
	Iterations  int     `json:"iterations"`
	NsPerOp     int64   `json:"ns_per_op"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
	ResultLen   int     `json:"result_len"`
	Relative    float64 `json:"relative"`
}

// buildRows 결과마다 같은 크기에서 가장 빠른 케이스 대비 배율을 계산합니다.
func buildRows(results []Result) []row {
	fastest := make(map[int]int64, len(results))
	for _, r := range results {
		if cur, ok := fastest[r.Size]; !ok || r.NsPerOp < cur {
			fastest[r.Size] = r.NsPerOp
		}
	}

	rows := make([]row, 0, len(results))
	for _, r := range results {
		relative := 1.0
		if base := fastest[r.Size]; base > 0 {
			relative = float64(r.NsPerOp) / float64(base)
		}
		rows = append(rows, row{
			Name:        r.Name(),
			Strategy:    r.Strategy,
			Size:        r.Size,
			Iterations:  r.Iterations,
			NsPerOp:     r.NsPerOp,
			BytesPerOp:  r.BytesPerOp,
			AllocsPerOp: r.AllocsPerOp,
			ResultLen:   r.ResultLen,
			Relative:    relative,
		})
	}
	return rows
}

// Render 결과를 지정한 형식으로 w에 출력합니다.
func Render(w io.Writer, format string, results []Result) error {
	rows := buildRows(results)

	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return apperrors.Wrap(err, apperrors.ExecutionFailed, "JSON 리포트 출력에 실패했습니다")
		}
		return nil
	}

	// CSV는 다른 프로그램에서 읽기 쉽도록 자릿수 구분 기호를 붙이지 않습니다.
	number := func(n int64) string { return strconv.FormatInt(n, 10) }
	if format != FormatCSV {
		p := message.NewPrinter(language.English)
		number = func(n int64) string { return p.Sprintf("%d", n) }
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Benchmark", "Iterations", "ns/op", "B/op", "allocs/op", "Relative"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Name,
			number(int64(r.Iterations)),
			number(r.NsPerOp),
			number(r.BytesPerOp),
			number(r.AllocsPerOp),
			fmt.Sprintf("%.2fx", r.Relative),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	switch format {
	case FormatTable:
		t.SetStyle(table.StyleRounded)
		t.Render()
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatHTML:
		t.RenderHTML()
	default:
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 리포트 형식입니다: '%s'", format)
	}

	return nil
}
