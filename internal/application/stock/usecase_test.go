package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethmayank01/gew-erp/internal/application/stock"
	"github.com/sethmayank01/gew-erp/internal/domain"
	"github.com/sethmayank01/gew-erp/internal/domain/entity"
	"github.com/sethmayank01/gew-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// engine arma los casos de uso sobre el almacén en memoria.
type engine struct {
	stockUC  *stock.StockUseCase
	indentUC *stock.IndentUseCase
}

func newEngine() *engine {
	st := memory.NewStore()
	tx := memory.NewTxRunner(st)
	return &engine{
		stockUC: stock.NewStockUseCase(tx,
			memory.NewStockRepository(st),
			memory.NewStockMovementRepository(st)),
		indentUC: stock.NewIndentUseCase(tx,
			memory.NewIndentStockRepository(st),
			memory.NewJobIndentRepository(st)),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func steelRod(invoice, qty string) stock.PositionInput {
	return stock.PositionInput{
		Type:     "Steel",
		Subtype:  "Rod",
		Quantity: d(qty),
		Price:    d("50"),
		Invoice:  invoice,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_ValidaTipoYSubtipo(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, stock.PositionInput{Subtype: "Rod", Quantity: d("10")})
	assert.True(t, domain.IsValidation(err), "sin type debe fallar con error de validación")

	_, err = e.stockUC.AddStock(ctx, stock.PositionInput{Type: "Steel", Quantity: d("10")})
	assert.True(t, domain.IsValidation(err), "sin subtype debe fallar con error de validación")

	// Nada quedó persistido
	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddStock_DuplicadosPorFacturaPermitidos(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	// Misma clave, facturas distintas: dos filas independientes.
	id1, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)
	id2, err := e.stockUC.AddStock(ctx, steelRod("INV2", "40"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "cada entrega recibe su propio id")

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddStock_RegistraMovimientoIN(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	movs, err := e.stockUC.ListMovements(ctx, entity.MovementIN)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "Steel - Rod", movs[0].Key)
	assert.True(t, movs[0].Quantity.Equal(d("100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// IssueStock
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueStock_DescuentaCantidad(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	updated, err := e.stockUC.IssueStock(ctx, steelRod("INV1", "0"), "INV1", d("30"))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(d("70")),
		"100 - 30 debe dejar 70, quedó %s", updated.Quantity)

	movs, err := e.stockUC.ListMovements(ctx, entity.MovementOUT)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(d("30")))
}

func TestIssueStock_ClavaEnCero(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "10"))
	require.NoError(t, err)

	updated, err := e.stockUC.IssueStock(ctx, steelRod("INV1", "0"), "INV1", d("25"))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.IsZero(), "la cantidad nunca baja de cero")
}

func TestIssueStock_FacturaInexistente(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "10"))
	require.NoError(t, err)

	_, err = e.stockUC.IssueStock(ctx, steelRod("", "0"), "INV9", d("5"))
	assert.True(t, domain.IsNotFound(err), "factura inexistente debe dar not found")
}

func TestIssueStock_DescuentaAgregadoDeIndents(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.indentUC.SubmitIndents(ctx, "J1", []stock.IndentLineInput{
		{Type: "Steel", Subtype: "Rod", Quantity: d("10")},
	})
	require.NoError(t, err)
	_, err = e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	updated, err := e.stockUC.IssueStock(ctx, steelRod("", "0"), "INV1", d("4"))
	require.NoError(t, err)

	aggs, err := e.indentUC.ListIndentAggregates(ctx)
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, "Steel - Rod", aggs[0].Key)
	assert.True(t, aggs[0].IndentQuantity.Equal(d("6")),
		"10 reservados - 4 emitidos debe dejar 6, quedó %s", aggs[0].IndentQuantity)

	// El espejo de la partida se recalcula desde el agregado.
	assert.True(t, updated.IndentQuantity.Equal(d("6")))
}

func TestIssueStock_SinIndentPrevioEsValido(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	// Emisión sin reserva previa: el agregado ausente no es error ni se crea.
	updated, err := e.stockUC.IssueStock(ctx, steelRod("", "0"), "INV1", d("30"))
	require.NoError(t, err)
	assert.True(t, updated.IndentQuantity.IsZero())

	aggs, err := e.indentUC.ListIndentAggregates(ctx)
	require.NoError(t, err)
	assert.Empty(t, aggs)
}

func TestIssueStock_AgregadoClavaEnCero(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.indentUC.SubmitIndents(ctx, "J1", []stock.IndentLineInput{
		{Type: "Steel", Subtype: "Rod", Quantity: d("3")},
	})
	require.NoError(t, err)
	_, err = e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	_, err = e.stockUC.IssueStock(ctx, steelRod("", "0"), "INV1", d("30"))
	require.NoError(t, err)

	aggs, err := e.indentUC.ListIndentAggregates(ctx)
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.True(t, aggs[0].IndentQuantity.IsZero(),
		"el agregado se clava en cero, no queda negativo")
}

func TestIssueStock_EmisionesConcurrentesNoPierdenDescuentos(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	// 10 emisiones de 10 en paralelo sobre la misma clave: sin el punto de
	// serialización por clave, dos lectores verían la misma cantidad previa
	// y se perdería un descuento.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.stockUC.IssueStock(ctx, steelRod("", "0"), "INV1", d("10"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.IsZero(),
		"100 - 10x10 debe dejar exactamente 0, quedó %s", list[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_DevuelveLaPartida(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	entry, err := e.stockUC.GetStock(ctx, steelRod("", "0"), "INV1")
	require.NoError(t, err)
	assert.Equal(t, "Steel - Rod", entry.Key)
	assert.True(t, entry.Quantity.Equal(d("100")))
}

func TestGetStock_FacturaInexistente(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	_, err = e.stockUC.GetStock(ctx, steelRod("", "0"), "INV9")
	assert.True(t, domain.IsNotFound(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteStock
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteStock_SoloLaFacturaIndicada(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)
	_, err = e.stockUC.AddStock(ctx, steelRod("INV2", "40"))
	require.NoError(t, err)

	require.NoError(t, e.stockUC.DeleteStock(ctx, steelRod("", "0"), "INV1"))

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1, "la otra factura de la misma clave queda intacta")
	assert.Equal(t, "INV2", list[0].Invoice)
}

func TestDeleteStock_NoExisteDejaTodoIgual(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	err = e.stockUC.DeleteStock(ctx, steelRod("", "0"), "INV9")
	assert.True(t, domain.IsNotFound(err))

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 1, "un borrado fallido no toca ningún libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListStock / BulkSave
// ──────────────────────────────────────────────────────────────────────────────

func TestListStock_FiltraPorSerie(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	withSerial := steelRod("INV2", "5")
	withSerial.JobSpecific = true
	withSerial.SerialNo = "J-42"
	_, err = e.stockUC.AddStock(ctx, withSerial)
	require.NoError(t, err)

	general, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	require.Len(t, general, 1)
	assert.Equal(t, "Steel - Rod", general[0].Key, "cada partida sale anotada con su clave")

	specific, err := e.stockUC.ListStock(ctx, true)
	require.NoError(t, err)
	require.Len(t, specific, 1)
	assert.Equal(t, "Steel - Rod - J-42", specific[0].Key)
}

func TestBulkSave_ListaVacia(t *testing.T) {
	e := newEngine()
	err := e.stockUC.BulkSave(context.Background(), nil, false)
	assert.True(t, domain.IsValidation(err))
}

func TestBulkSave_UpsertPorClavePisaLaPartidaPrevia(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	// AddStock es insert por entrega; BulkSave reemplaza por clave.
	_, err := e.stockUC.AddStock(ctx, steelRod("INV1", "100"))
	require.NoError(t, err)

	err = e.stockUC.BulkSave(ctx, []stock.PositionInput{steelRod("INV9", "33")}, false)
	require.NoError(t, err)

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1, "el guardado masivo pisa lo que hubiera bajo la clave")
	assert.Equal(t, "INV9", list[0].Invoice)
	assert.True(t, list[0].Quantity.Equal(d("33")))
}

func TestBulkSave_OmitePosicionesIncompletas(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	err := e.stockUC.BulkSave(ctx, []stock.PositionInput{
		{Subtype: "Rod", Quantity: d("1")}, // sin type: se omite
		steelRod("INV1", "10"),
	}, false)
	require.NoError(t, err)

	list, err := e.stockUC.ListStock(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListMovements_DireccionInvalida(t *testing.T) {
	e := newEngine()
	_, err := e.stockUC.ListMovements(context.Background(), "SIDEWAYS")
	assert.True(t, domain.IsValidation(err))
}
