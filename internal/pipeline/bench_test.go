package pipeline

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/source"
)

func syntheticCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("uuid,name,start_time,end_time,duration,dialogue_turns,input_tokens,output_tokens\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		ts := start.Add(time.Duration(i) * 37 * time.Minute)
		fmt.Fprintf(&buf, "id-%d,Conversation %d,%s,%s,120.0,3,10,20\n",
			i, i, ts.Format("2006-01-02 15:04:05.000000-07:00"), ts.Add(2*time.Minute).Format("2006-01-02 15:04:05-07:00"))
	}
	return buf.Bytes()
}

func BenchmarkParseConversations(b *testing.B) {
	data := syntheticCSV(20000)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.ParseConversations(bytes.NewReader(data), time.UTC); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildContributions(b *testing.B) {
	res, err := source.ParseConversations(bytes.NewReader(syntheticCSV(20000)), time.UTC)
	if err != nil {
		b.Fatal(err)
	}
	loc := time.FixedZone("CST", 8*3600)

	b.ResetTimer()
	var cells []model.ContributionCell
	for i := 0; i < b.N; i++ {
		cells = BuildContributions(res.Records, loc)
	}
	_ = cells
}
