// Package fileio implements the pipe-delimited bulk file format for
// transport records.
//
// The format is one header line followed by one line per transport,
// fifteen columns each. Decoding is deliberately lenient: an
// unrecognized header means "no data" rather than "malformed file",
// short rows are skipped silently, and a row that fails to parse is
// dropped with a logged diagnostic while the rest of the file still
// decodes. This policy matches previously exported files and must not
// be tightened. The delimiter is never escaped; valid data does not
// contain it inside free-text fields.
package fileio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/St4n1l/TransportCompany/internal/transport/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Header is the exact fifteen-column header line. Column order is part
// of the on-disk contract with previously exported files.
const Header = "ID|CompanyID|ClientID|VehicleID|DriverID|StartLocation|EndLocation|StartDate|EndDate|TransportType|CargoDescription|CargoWeight|PassengerCount|Price|IsPaid"

const (
	delimiter   = "|"
	dateLayout  = "2006-01-02 15:04:05"
	columnCount = 15
)

// Row is the decoded form of one file line. It carries raw foreign-key
// ids and field values; resolving references and validating is the
// caller's job, row by row, through the transport service.
type Row struct {
	CompanyID        *uint
	ClientID         *uint
	VehicleID        *uint
	DriverID         *uint
	StartLocation    string
	EndLocation      string
	StartDate        *time.Time
	EndDate          *time.Time
	TransportType    string
	CargoDescription string
	CargoWeight      *decimal.Decimal
	PassengerCount   *int
	Price            *decimal.Decimal
	IsPaid           *bool
}

// Codec encodes transports to the pipe format and decodes them back.
type Codec struct {
	logger *zap.Logger
}

func NewCodec(logger *zap.Logger) *Codec {
	return &Codec{logger: logger.Named("transport_fileio")}
}

// Encode renders the header line plus one line per transport. Absent
// fields render as empty strings between delimiters.
func (c *Codec) Encode(transports []models.Transport) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")
	for i := range transports {
		sb.WriteString(formatTransport(&transports[i]))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Decode parses file content into rows. Blank content or a header not
// starting with "ID" yields an empty result without an error. Rows
// that are short or unparseable are dropped; everything else decodes.
func (c *Codec) Decode(content string) []Row {
	var rows []Row
	if strings.TrimSpace(content) == "" {
		return rows
	}

	lines := strings.Split(content, "\n")
	if !strings.HasPrefix(lines[0], "ID") {
		return rows
	}
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			c.logger.Warn("skipping unparseable transport line",
				zap.String("line", line),
				zap.Error(err),
			)
			continue
		}
		if row == nil {
			// fewer than fifteen columns, silently dropped
			continue
		}
		rows = append(rows, *row)
	}
	return rows
}

// Save writes the encoded transports to path.
func (c *Codec) Save(transports []models.Transport, path string) error {
	if err := os.WriteFile(path, []byte(c.Encode(transports)), 0o644); err != nil {
		return fmt.Errorf("failed to write transport file: %w", err)
	}
	return nil
}

// Load reads and decodes the file at path. A missing or unreadable
// file is an error; everything row-level is handled leniently by
// Decode.
func (c *Codec) Load(path string) ([]Row, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transport file: %w", err)
	}
	return c.Decode(string(content)), nil
}

func formatTransport(t *models.Transport) string {
	fields := []string{
		formatID(t.ID),
		formatID(t.CompanyID),
		formatID(t.ClientID),
		formatIDPtr(t.VehicleID),
		formatIDPtr(t.DriverID),
		t.StartLocation,
		t.EndLocation,
		t.StartDate.Format(dateLayout),
		formatTimePtr(t.EndDate),
		t.TransportType,
		t.CargoDescription,
		formatNullDecimal(t.CargoWeight),
		formatIntPtr(t.PassengerCount),
		t.Price.String(),
		strconv.FormatBool(t.IsPaid),
	}
	return strings.Join(fields, delimiter)
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

func formatIDPtr(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func parseRow(line string) (*Row, error) {
	parts := strings.Split(line, delimiter)
	if len(parts) < columnCount {
		return nil, nil
	}

	companyID, err := parseIDPtr(parts[1])
	if err != nil {
		return nil, fmt.Errorf("company id: %w", err)
	}
	clientID, err := parseIDPtr(parts[2])
	if err != nil {
		return nil, fmt.Errorf("client id: %w", err)
	}
	vehicleID, err := parseIDPtr(parts[3])
	if err != nil {
		return nil, fmt.Errorf("vehicle id: %w", err)
	}
	driverID, err := parseIDPtr(parts[4])
	if err != nil {
		return nil, fmt.Errorf("driver id: %w", err)
	}
	startDate, err := parseTimePtr(parts[7])
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDate, err := parseTimePtr(parts[8])
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	cargoWeight, err := parseDecimalPtr(parts[11])
	if err != nil {
		return nil, fmt.Errorf("cargo weight: %w", err)
	}
	passengerCount, err := parseIntPtr(parts[12])
	if err != nil {
		return nil, fmt.Errorf("passenger count: %w", err)
	}
	price, err := parseDecimalPtr(parts[13])
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	return &Row{
		CompanyID:        companyID,
		ClientID:         clientID,
		VehicleID:        vehicleID,
		DriverID:         driverID,
		StartLocation:    parts[5],
		EndLocation:      parts[6],
		StartDate:        startDate,
		EndDate:          endDate,
		TransportType:    parts[9],
		CargoDescription: parts[10],
		CargoWeight:      cargoWeight,
		PassengerCount:   passengerCount,
		Price:            price,
		IsPaid:           parseBoolPtr(parts[14]),
	}, nil
}

func parseIDPtr(s string) (*uint, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, err
	}
	id := uint(n)
	return &id, nil
}

func parseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimalPtr(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseBoolPtr never fails: anything that is not "true" reads as
// false, matching historically exported files.
func parseBoolPtr(s string) *bool {
	if s == "" {
		return nil
	}
	b := strings.EqualFold(s, "true")
	return &b
}
