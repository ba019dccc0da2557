package commands_test

import (
	"testing"

	"deliveryportal/internal/core/application/usecases/commands"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPickup  = kernel.Address{Street: "Rua das Flores, 10", City: "Belo Horizonte"}
	testDropoff = kernel.Address{Street: "Av. Brasil, 500", City: "Contagem"}
	testProduct = order.Product{Description: "Livros", Value: kernel.MustMoney("80.00")}
	testFee     = kernel.MustMoney("22.50")
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	company := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(company, testPickup, testDropoff, testProduct, testFee, "portaria")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, company, cmd.CompanyID())
	assert.Equal(t, testPickup, cmd.Pickup())
	assert.Equal(t, testDropoff, cmd.Dropoff())
	assert.Equal(t, testProduct, cmd.Product())
	assert.True(t, testFee.Equal(cmd.ShippingFee()))
	assert.Equal(t, "portaria", cmd.Notes())
}

func TestNewCreateOrderCommand_InvalidCompanyID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, testPickup, testDropoff, testProduct, testFee, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateOrderCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
