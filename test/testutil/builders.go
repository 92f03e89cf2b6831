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

package testutil

import (
	"encoding/json"
	"fmt"
)

// TransferAdBuilder provides a fluent API for creating test transfer ads
type TransferAdBuilder struct {
	fields map[string]interface{}
}

// NewTransferAdBuilder creates a new ad builder with defaults. The record
// time is 1700000000 plus n so successive ads sort naturally.
func NewTransferAdBuilder(n int) *TransferAdBuilder {
	return &TransferAdBuilder{
		fields: map[string]interface{}{
			"ScheddName":         "ap40.uw.osg-htc.org",
			"TransferProtocol":   "osdf",
			"RecordTime":         1700000000 + n,
			"TransferUrl":        fmt.Sprintf("osdf:///ospool/ap40/data/user/input-%d.tar.gz", n),
			"TransferSuccess":    true,
			"TransferTotalBytes": 1048576 * (n + 1),
			"GlobalJobId":        fmt.Sprintf("ap40.uw.osg-htc.org#%d.0#1700000000", n),
		},
	}
}

// WithAP sets the access point name
func (b *TransferAdBuilder) WithAP(ap string) *TransferAdBuilder {
	b.fields["ScheddName"] = ap
	return b
}

// WithProtocol sets the transfer protocol
func (b *TransferAdBuilder) WithProtocol(protocol string) *TransferAdBuilder {
	b.fields["TransferProtocol"] = protocol
	return b
}

// WithRecordTime sets the record time
func (b *TransferAdBuilder) WithRecordTime(ts int64) *TransferAdBuilder {
	b.fields["RecordTime"] = ts
	return b
}

// WithFailure marks the transfer as failed with the given error
func (b *TransferAdBuilder) WithFailure(reason string) *TransferAdBuilder {
	b.fields["TransferSuccess"] = false
	b.fields["TransferError"] = reason
	delete(b.fields, "TransferTotalBytes")
	return b
}

// WithField sets an arbitrary field
func (b *TransferAdBuilder) WithField(key string, value interface{}) *TransferAdBuilder {
	b.fields[key] = value
	return b
}

// Build returns the ad as it would be stored in _source
func (b *TransferAdBuilder) Build() json.RawMessage {
	data, err := json.Marshal(b.fields)
	if err != nil {
		panic(fmt.Sprintf("testutil: cannot marshal transfer ad: %v", err))
	}
	return data
}

// GenerateAds builds n default ads numbered 0..n-1
func GenerateAds(n int) []json.RawMessage {
	ads := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		ads = append(ads, NewTransferAdBuilder(i).Build())
	}
	return ads
}
