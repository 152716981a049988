package dto

// Shared lifecycle outcome types.
//
// Two failure channels exist and must not be collapsed:
//   - transport / DB failures travel as Go errors (the caller shows a generic
//     failure message);
//   - business-rule rejections travel as returned values with Exito=false
//     (the caller shows Mensaje and may offer a recovery path, e.g.
//     "desactivar en su lugar").

// ResultadoOperacion is returned by every soft-delete call.
type ResultadoOperacion struct {
	Exito   bool   `json:"exito"`
	Mensaje string `json:"mensaje"`
}

// ReferenciaBloqueo describes rows in another table that reference the
// entity and therefore block its physical deletion.
type ReferenciaBloqueo struct {
	Tabla    string `json:"tabla"`
	Cantidad int64  `json:"cantidad"`
}

// ResultadoValidacion is the transient product of the pre-delete check.
// Never persisted; consumed immediately by the caller.
type ResultadoValidacion struct {
	PuedeEliminar bool                `json:"puede_eliminar"`
	Mensaje       string              `json:"mensaje"`
	Referencias   []ReferenciaBloqueo `json:"referencias,omitempty"`
}

// ResultadoEliminacion is returned by the guarded product delete flow.
// Tipo is "desactivado" on success. On a business rejection Validacion
// carries the guard's payload so the UI can branch.
type ResultadoEliminacion struct {
	Exito      bool                 `json:"exito"`
	Mensaje    string               `json:"mensaje"`
	Tipo       string               `json:"tipo,omitempty"`
	Validacion *ResultadoValidacion `json:"validacion,omitempty"`
}
