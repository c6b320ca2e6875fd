// internal/application/query/catalog/product_detail_query_mappers.go
package catalogQuery

import (
	dto "storefront/internal/application/query/catalog/dto"
	catdom "storefront/internal/domain/catalog"
)

// ============================================================
// mappers (domain -> dto)
// ============================================================

func toProductDTO(p catdom.Product) dto.ProductDTO {
	axes := make([]dto.AxisDTO, 0, len(p.VariationAxes))
	for _, a := range p.VariationAxes {
		axes = append(axes, dto.AxisDTO{
			ID:     a.ID,
			Name:   a.Name,
			Values: a.Values,
		})
	}
	return dto.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Axes:        axes,
		Thumbnail:   p.Thumbnail,
		Images:      p.Images,
	}
}

func toSKUDTO(s catdom.SKU) dto.SKUDTO {
	return dto.SKUDTO{
		ID:        s.ID,
		TierIndex: s.TierIndex,
		Price:     s.Price,
		Stock:     s.Stock,
		InStock:   s.InStock(),
		Thumbnail: s.Thumbnail,
		Images:    s.Images,
	}
}

func toSKUDTOs(skus []catdom.SKU) []dto.SKUDTO {
	out := make([]dto.SKUDTO, 0, len(skus))
	for _, s := range skus {
		out = append(out, toSKUDTO(s))
	}
	return out
}

func toResolutionDTO(r catdom.Resolution) dto.ResolutionDTO {
	out := dto.ResolutionDTO{State: string(r.State)}
	if r.SKU != nil {
		s := toSKUDTO(*r.SKU)
		out.SKU = &s
	}
	return out
}

func toAxisAvailabilityDTO(axis catdom.Axis, available []string, sel catdom.Selection) dto.AxisAvailabilityDTO {
	availSet := make(map[string]struct{}, len(available))
	for _, v := range available {
		availSet[v] = struct{}{}
	}

	chosen := sel[axis.ID]

	values := make([]dto.ValueAvailability, 0, len(axis.Values))
	for _, v := range axis.Values {
		_, ok := availSet[v]
		values = append(values, dto.ValueAvailability{
			Value:     v,
			Available: ok,
			Selected:  v == chosen,
		})
	}
	return dto.AxisAvailabilityDTO{
		AxisID: axis.ID,
		Name:   axis.Name,
		Values: values,
	}
}

func toWarningDTOs(warns []catdom.IntegrityWarning) []dto.IntegrityWarningDTO {
	if len(warns) == 0 {
		return nil
	}
	out := make([]dto.IntegrityWarningDTO, 0, len(warns))
	for _, w := range warns {
		out = append(out, dto.IntegrityWarningDTO{
			SKUID:  w.SKUID,
			Reason: string(w.Reason),
			Detail: w.Detail,
		})
	}
	return out
}
