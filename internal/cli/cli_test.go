package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos-store/internal/models"
)

// response mirrors CLIResponse with the payload left raw
type response struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes posctl against db with JSON output
func run(t *testing.T, db string, stdin string, args ...string) result {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", db, "--format", "json"}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (r result) decode(t *testing.T) response {
	t.Helper()

	var resp response
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp), "stdout: %s", r.stdout)
	return resp
}

func newTestDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POS_DATA_DIR", dir)
	t.Setenv("POS_LOG_LEVEL", "warn")
	return filepath.Join(dir, "restaurant.db")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "posctl", cmd.Use)
	assert.Contains(t, cmd.Long, "SQLite")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"init"},
		{"products", "list"},
		{"products", "add"},
		{"products", "delete"},
		{"settings", "get"},
		{"settings", "save"},
		{"sales", "add"},
		{"transactions", "list"},
		{"transactions", "delete"},
		{"analytics"},
		{"snapshot", "export"},
		{"snapshot", "import"},
		{"snapshot", "restore"},
		{"doctor"},
	}

	for _, path := range commands {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSettingsSaveFlags(t *testing.T) {
	cmd := NewRootCommand()
	saveCmd, _, err := cmd.Find([]string{"settings", "save"})
	require.NoError(t, err)

	for _, f := range settingsFlags {
		assert.NotNil(t, saveCmd.Flags().Lookup(f.name), f.name)
	}
}

func TestInvalidFormat(t *testing.T) {
	db := newTestDB(t)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", db, "--format", "xml", "products", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.NoFileExists(t, db)
}

func TestInitCommand(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 2; i++ {
		r := run(t, db, "", "init")
		require.NoError(t, r.err, r.stderr)

		resp := r.decode(t)
		assert.Equal(t, "ok", resp.Status)
		assert.NotEmpty(t, resp.TraceID)
	}
	assert.FileExists(t, db)
}

func TestProductsCommands(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "products", "add", "--name", "Chai", "--price", "60", "--unit", "cup")
	require.NoError(t, r.err, r.stdout)
	var chai models.Product
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &chai))
	assert.Equal(t, "Chai", chai.Name)

	r = run(t, db, "", "products", "add", "--name", "Naan", "--price", "30")
	require.NoError(t, r.err, r.stdout)

	r = run(t, db, "", "products", "list")
	require.NoError(t, r.err)
	var products []models.Product
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Naan", products[0].Name)
	assert.Equal(t, models.DefaultUnit, products[0].Unit)

	r = run(t, db, "", "products", "delete", "1")
	require.NoError(t, r.err)

	r = run(t, db, "", "products", "list")
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Naan", products[0].Name)
}

func TestProductsAddValidation(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "products", "add", "--name", "   ", "--price", "10")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.True(t, IsReported(r.err))

	resp := r.decode(t)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeValidation, resp.Error.Code)

	r = run(t, db, "", "products", "add", "--name", "Tea", "--price", "-1")
	require.Error(t, r.err)
	assert.Equal(t, CodeValidation, r.decode(t).Error.Code)
}

func TestProductsDeleteInvalidID(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "products", "delete", "abc")
	require.Error(t, r.err)
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
	assert.Equal(t, CodeValidation, r.decode(t).Error.Code)
}

func TestSalesAndTransactions(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "sales", "add", "--item", "Tea:2.5:3:cup", "--item", "Naan:30:2:piece", "--currency", "PKR")
	require.NoError(t, r.err, r.stdout)

	order := `{"products":[{"name":"Karahi","price":1200,"quantity":1,"unit":"plate"}],"total_amount":1100,"currency":"PKR"}`
	r = run(t, db, order, "sales", "add", "--file", "-")
	require.NoError(t, r.err, r.stdout)

	r = run(t, db, "", "transactions", "list")
	require.NoError(t, r.err)
	var transactions []models.Transaction
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &transactions))
	require.Len(t, transactions, 2)

	assert.Equal(t, 1100.0, transactions[0].TotalAmount, "explicit total is kept")
	assert.Equal(t, 67.5, transactions[1].TotalAmount, "total defaults to the item sum")
	require.Len(t, transactions[1].Items, 2)
	assert.Equal(t, 7.5, transactions[1].Items[0].Subtotal)

	r = run(t, db, "", "transactions", "delete", "2")
	require.NoError(t, r.err)

	r = run(t, db, "", "analytics")
	require.NoError(t, r.err)
	var data models.AnalyticsData
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &data))
	assert.Equal(t, int64(1), data.Summary.TotalOrders)
	assert.Equal(t, 67.5, data.Summary.TotalRevenue)

	r = run(t, db, "", "doctor")
	require.NoError(t, r.err, r.stdout)
}

func TestSalesAddRejectsEmptyOrder(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "sales", "add")
	require.Error(t, r.err)
	assert.Equal(t, CodeValidation, r.decode(t).Error.Code)

	r = run(t, db, "", "sales", "add", "--item", "Tea:cheap:1:cup")
	require.Error(t, r.err)
	assert.Equal(t, ExitCommandError, GetExitCode(r.err))
}

func TestSettingsCommands(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "", "settings", "get")
	require.NoError(t, r.err)
	var settings models.Settings
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &settings))
	assert.Equal(t, models.DefaultRestaurantName, models.StringValue(settings.RestaurantName))

	r = run(t, db, "", "settings", "save", "--restaurant-name", "Lahore Tikka House", "--opening-time", "11:00")
	require.NoError(t, r.err, r.stdout)

	r = run(t, db, "", "settings", "get")
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &settings))
	assert.Equal(t, "Lahore Tikka House", models.StringValue(settings.RestaurantName))
	assert.Equal(t, "11:00", models.StringValue(settings.OpeningTime))
	assert.Nil(t, settings.Currency, "fields without a flag are cleared")

	r = run(t, db, "", "settings", "save", "--closing-time", "late")
	require.Error(t, r.err)
	assert.Equal(t, CodeValidation, r.decode(t).Error.Code)
}

func TestSnapshotRoundTrip(t *testing.T) {
	source := newTestDB(t)
	target := filepath.Join(t.TempDir(), "target.db")
	snapshotFile := filepath.Join(t.TempDir(), "snapshot.b64")

	require.NoError(t, run(t, source, "", "products", "add", "--name", "Lassi", "--price", "150").err)
	require.NoError(t, run(t, target, "", "init").err)

	r := run(t, source, "", "snapshot", "export", "--output", snapshotFile)
	require.NoError(t, r.err, r.stdout)

	encoded, err := os.ReadFile(snapshotFile)
	require.NoError(t, err)
	_, err = base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)

	r = run(t, target, "", "snapshot", "import", "--input", snapshotFile)
	require.NoError(t, r.err, r.stdout)
	var imported map[string]string
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &imported))
	assert.Equal(t, target+".backup", imported["backup_path"])
	assert.FileExists(t, target+".backup")

	r = run(t, target, "", "products", "list")
	require.NoError(t, r.err)
	var products []models.Product
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Lassi", products[0].Name)
}

func TestSnapshotRestoreAfterBadImport(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, run(t, db, "", "products", "add", "--name", "Tea", "--price", "50").err)

	garbage := base64.StdEncoding.EncodeToString([]byte("not a database at all"))
	r := run(t, db, garbage, "snapshot", "import")
	require.NoError(t, r.err, r.stdout)

	r = run(t, db, "", "products", "list")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, GetExitCode(r.err))
	assert.Equal(t, CodeStorage, r.decode(t).Error.Code)

	r = run(t, db, "", "doctor")
	require.Error(t, r.err)
	assert.Equal(t, CodeUnhealthy, r.decode(t).Error.Code)

	r = run(t, db, "", "snapshot", "restore")
	require.NoError(t, r.err, r.stdout)

	r = run(t, db, "", "products", "list")
	require.NoError(t, r.err)
	var products []models.Product
	require.NoError(t, json.Unmarshal(r.decode(t).Data, &products))
	require.Len(t, products, 1)
}

func TestSnapshotImportRejectsBadBase64(t *testing.T) {
	db := newTestDB(t)

	r := run(t, db, "%%%", "snapshot", "import")
	require.Error(t, r.err)
	assert.Equal(t, CodeValidation, r.decode(t).Error.Code)
}

func TestParseSaleItem(t *testing.T) {
	tests := []struct {
		raw     string
		name    string
		price   float64
		qty     float64
		unit    string
		wantErr bool
	}{
		{raw: "Tea:2.5:3:cup", name: "Tea", price: 2.5, qty: 3, unit: "cup"},
		{raw: "Rice:400:0.5:kg", name: "Rice", price: 400, qty: 0.5, unit: "kg"},
		{raw: "Combo: Tea:100:1:set", name: "Combo: Tea", price: 100, qty: 1, unit: "set"},
		{raw: "Tea:2.5:3", wantErr: true},
		{raw: "Tea:x:3:cup", wantErr: true},
		{raw: "Tea:2.5:y:cup", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			item, err := parseSaleItem(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitCommandError, GetExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, item.Name)
			assert.Equal(t, tt.price, item.Price)
			assert.Equal(t, tt.qty, item.Quantity)
			assert.Equal(t, tt.unit, item.Unit)
		})
	}
}
