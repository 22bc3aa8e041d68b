package subscribercsv_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinminlatt/ispbill/internal/importer/subscribercsv"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_SubscriberSheet(t *testing.T) {
	csv := `Subscriber Export - 2026-08-28
Branch,Hlaing Township

Name,Primary Phone,Secondary Phone,Address,Quarter,Plan,ONU Serial,DNSN,GPS,Install Date,Expiry Date
Aung Aung,09-790000001,,No.12 Main Road,Hlaing,Home 40M,HWTC-1111,DN-9001,"16.8409,96.1735",2026-01-15,
Su Su,09-790000002,09-420000002,No.34 Lake Street,Kamaryut,Biz 100M,HWTC-2222,DN-9002,,2025-11-01,2026-11-01
`

	p := subscribercsv.New()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Aung Aung", rows[0].Name)
	assert.Equal(t, "09-790000001", rows[0].PrimaryPhone)
	assert.Equal(t, "Hlaing", rows[0].QuarterName)
	assert.Equal(t, "Home 40M", rows[0].PlanName)
	assert.Equal(t, "HWTC-1111", rows[0].ONUSerial)
	assert.Equal(t, "16.8409,96.1735", rows[0].GPSCoords)
	assert.Equal(t, date(2026, 1, 15), rows[0].InstallDate)
	assert.Nil(t, rows[0].ExpiryDate)

	assert.Equal(t, "Su Su", rows[1].Name)
	assert.Equal(t, "09-420000002", rows[1].SecondaryPhone)
	require.NotNil(t, rows[1].ExpiryDate)
	assert.Equal(t, date(2026, 11, 1), *rows[1].ExpiryDate)
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := `Name,Primary Phone,Address,Quarter,Plan,Install Date
Aung Aung,09-790000001,No.12,Hlaing,Home 40M,2026-01-15
,,,,,
`

	p := subscribercsv.New()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParser_NoHeader(t *testing.T) {
	p := subscribercsv.New()
	_, err := p.Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no subscriber header")
}

func TestParser_BadDate(t *testing.T) {
	csv := `Name,Primary Phone,Address,Quarter,Plan,Install Date
Aung Aung,09-790000001,No.12,Hlaing,Home 40M,15-01-2026
`

	p := subscribercsv.New()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "invalid install date")
}

// Errors must name the line as counted in the spreadsheet, including
// any title rows above the header.
func TestParser_ErrorLineCountsPreamble(t *testing.T) {
	csv := `Subscriber Export
Branch,Hlaing Township
Name,Primary Phone,Address,Quarter,Plan,Install Date
Aung Aung,09-790000001,No.12,Hlaing,Home 40M,2026-01-15
Su Su,09-790000002,No.34,Kamaryut,Biz 100M,bad-date
`

	p := subscribercsv.New()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
}
