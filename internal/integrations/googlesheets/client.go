package googlesheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// ValuesWriter overwrites a range of a spreadsheet and reports the updated row count.
type ValuesWriter interface {
	Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error)
}

type sheetsWriter struct {
	service *sheets.Service
}

// NewSheetsWriter builds a Sheets API client from service account credentials.
func NewSheetsWriter(ctx context.Context, credentialsJSON string) (ValuesWriter, error) {
	credentials, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	service, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &sheetsWriter{service: service}, nil
}

func (w *sheetsWriter) Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error) {
	resp, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("unable to write spreadsheet: %w", err)
	}
	return resp.UpdatedRows, nil
}
