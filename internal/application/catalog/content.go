package catalog

import (
	"slices"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// NoPhoneLabel teléfono mostrado cuando la sucursal no tiene uno cargado.
const NoPhoneLabel = "Не указан"

const privacyTitle = "Политика конфиденциальности"

const privacyBody = `Мы обрабатываем персональные данные (имя, адрес электронной почты, телефон и адрес доставки) ` +
	`только для работы личного кабинета, избранного и связи с покупателем. ` +
	`Данные не передаются третьим лицам, за исключением случаев, предусмотренных законом. ` +
	`Для удаления учетной записи обратитесь в любой филиал магазина.`

func sortCities(cities []dto.CityBranches) {
	slices.SortFunc(cities, func(a, b dto.CityBranches) int {
		return strings.Compare(a.City, b.City)
	})
}
