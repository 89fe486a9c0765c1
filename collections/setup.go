package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the proveedores, insumos,
// formas_pago, empleados, compras and detalles_compra collections exist.
func Setup(app *pocketbase.PocketBase) {
	proveedores := ensureCollection(app, "proveedores", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre", Required: true})
		c.Fields.Add(&core.TextField{Name: "razon_social"})
		c.Fields.Add(&core.TextField{Name: "cuit"})
		c.Fields.Add(&core.TextField{Name: "telefono"})
		c.Fields.Add(&core.TextField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "direccion"})
		c.Fields.Add(&core.TextField{Name: "ciudad"})
		c.Fields.Add(&core.TextField{Name: "categoria"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	insumos := ensureCollection(app, "insumos", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre", Required: true})
		c.Fields.Add(&core.TextField{Name: "descripcion"})
		c.Fields.Add(&core.TextField{Name: "unidad_medida"})
		c.Fields.Add(&core.NumberField{Name: "stock_actual", OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "stock_minimo", OnlyInt: true})
		// zero is a valid cost, so the field cannot be Required
		c.Fields.Add(&core.NumberField{Name: "precio_costo_unitario"})
		c.Fields.Add(&core.RelationField{
			Name:         "proveedor",
			CollectionId: proveedores.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	formasPago := ensureCollection(app, "formas_pago", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre_forma", Required: true})
	})

	empleados := ensureCollection(app, "empleados", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre", Required: true})
		c.Fields.Add(&core.TextField{Name: "apellido"})
		c.Fields.Add(&core.TextField{Name: "cargo"})
	})

	compras := ensureCollection(app, "compras", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "proveedor",
			Required:     true,
			CollectionId: proveedores.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "forma_pago",
			CollectionId: formasPago.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "empleado",
			CollectionId: empleados.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "fecha_compra"})
		c.Fields.Add(&core.NumberField{Name: "costo_total"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "detalles_compra", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "compra",
			Required:      true,
			CollectionId:  compras.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "insumo",
			Required:     true,
			CollectionId: insumos.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.NumberField{Name: "cantidad", Required: true})
		c.Fields.Add(&core.NumberField{Name: "precio_unitario", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
