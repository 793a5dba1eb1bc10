package googlesheets

import (
	"context"
	"fmt"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"go.uber.org/zap"
)

var header = []interface{}{"Container", "Section", "Address", "Name", "Category", "Quantity", "Min quantity", "Status"}

type Exporter struct {
	writer        ValuesWriter
	spreadsheetID string
	writeRange    string
	log           *zap.Logger
}

func NewExporter(writer ValuesWriter, spreadsheetID, writeRange string, log *zap.Logger) *Exporter {
	return &Exporter{
		writer:        writer,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		log:           log,
	}
}

type ExportResult struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Range         string `json:"range"`
	Components    int    `json:"components"`
	UpdatedRows   int64  `json:"updated_rows"`
}

// ExportInventory replaces the configured range with a header row and one row per component.
func (e *Exporter) ExportInventory(ctx context.Context, components []models.ComponentWithLocation) (*ExportResult, error) {
	values := BuildRows(components)

	updated, err := e.writer.Update(ctx, e.spreadsheetID, e.writeRange, values)
	if err != nil {
		return nil, custom_error.StorageIO(err, "unable to export inventory")
	}

	e.log.Info("exported inventory to google sheets",
		zap.String("spreadsheet_id", e.spreadsheetID),
		zap.Int("components", len(components)),
		zap.Int64("updated_rows", updated),
	)

	return &ExportResult{
		SpreadsheetID: e.spreadsheetID,
		Range:         e.writeRange,
		Components:    len(components),
		UpdatedRows:   updated,
	}, nil
}

// BuildRows renders the header and component rows in the exported column order.
func BuildRows(components []models.ComponentWithLocation) [][]interface{} {
	values := make([][]interface{}, 0, len(components)+1)
	values = append(values, header)

	for _, c := range components {
		status := c.Status
		if status == "" {
			c.LoadStatus()
			status = c.Status
		}
		values = append(values, []interface{}{
			c.ContainerName,
			fmt.Sprintf("%s (%s)", c.SectionName, c.SectionDesignation),
			c.GridPosition,
			c.Name,
			c.EffectiveCategory(),
			c.Quantity,
			c.MinQuantity,
			string(status),
		})
	}

	return values
}
