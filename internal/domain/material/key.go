package material

// DeriveKey calcula la clave compuesta canónica de una posición de material
// (servicio de dominio, función pura). Formato: "{type} - {subtype}", con
// " - {serialNo}" agregado solo cuando la posición es específica de un trabajo
// Y trae número de serie.
//
// La clave es el punto de unión entre stock e indent_stock: debe derivarse
// byte a byte igual en TODOS los puntos de consumo (agregar, emitir, borrar,
// registrar indents). No se normalizan espacios ni mayúsculas; los callers
// deben pasar type/subtype ya normalizados porque la clave se compara por
// igualdad exacta.
func DeriveKey(matType, subtype string, jobSpecific bool, serialNo string) string {
	key := matType + " - " + subtype
	if jobSpecific && serialNo != "" {
		key = key + " - " + serialNo
	}
	return key
}
