// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"
)

// sampleAd returns a transfer ad roughly the size of a real one.
func sampleAd(num int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"ScheddName":"ap40.uw.osg-htc.org","TransferProtocol":"osdf",`+
		`"RecordTime":%d,"TransferUrl":"osdf:///ospool/ap40/data/user/file-%d.tar.gz",`+
		`"TransferSuccess":true,"TransferTotalBytes":104857600,"TransferEndTime":%d,`+
		`"Endpoint":"osdf-cache.example.org:8443","GlobalJobId":"ap40#%d.0#1700000000"}`,
		1700000000+num, num, 1700000100+num, num))
}

// BenchmarkArrayWriter_Write benchmarks buffering single records
func BenchmarkArrayWriter_Write(b *testing.B) {
	w := NewArrayWriter(io.Discard)
	ad := sampleAd(1)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := w.Write(ad); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkArrayWriter_Close benchmarks emitting arrays of various sizes
func BenchmarkArrayWriter_Close(b *testing.B) {
	for _, n := range []int{10, 1000, 10000} {
		b.Run(fmt.Sprintf("ads=%d", n), func(b *testing.B) {
			ads := make([]json.RawMessage, n)
			for i := range ads {
				ads[i] = sampleAd(i)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				w := NewArrayWriter(io.Discard)
				for _, ad := range ads {
					_ = w.Write(ad)
				}
				if err := w.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
