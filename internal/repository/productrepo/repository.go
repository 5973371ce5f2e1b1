package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/cache"
	"macstock/internal/pkg/logger"
)

// Clave de caché para productos individuales.
const productoCacheKey = "producto:%s"

// TTL del caché de productos. El stock cacheado puede quedar hasta este
// tiempo por detrás del libro de movimientos; el catálogo lo tolera.
const productoCacheTTL = 5 * time.Minute

// ProductRepository es la capa de persistencia del catálogo. Lee
// productos.stock pero jamás lo escribe: esa columna pertenece al libro
// de movimientos (stockrepo).
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository crea y devuelve una nueva instancia del repositorio.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save persiste un nuevo producto en el catálogo.
func (r *ProductRepository) Save(ctx context.Context, producto domain.Producto) (domain.Producto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO productos
            (id, nombre, marca, precio, descripcion, numero_referencia, categoria,
             subcategoria, stock, activo, destacado, fecha_creacion, fecha_actualizado)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		producto.ID,
		producto.Nombre,
		producto.Marca,
		producto.Precio,
		producto.Descripcion,
		producto.NumeroReferencia,
		producto.Categoria,
		producto.Subcategoria,
		producto.Stock,
		producto.Activo,
		producto.Destacado,
		producto.FechaCreacion,
		producto.FechaActualizado,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.Producto{}, apperror.NewConflictError(
				fmt.Sprintf("La referencia '%s' ya existe en el catálogo.", producto.NumeroReferencia))
		}
		r.logger.Error("Falla al insertar el producto en el DB.", err)
		return domain.Producto{}, apperror.NewDBError("Falla al crear el producto", err)
	}

	r.logger.Info("Producto creado con éxito.", map[string]interface{}{
		"id":                producto.ID,
		"numero_referencia": producto.NumeroReferencia,
	})
	return producto, nil
}

// FindByID busca un producto por ID con estrategia cache-aside: primero el
// caché, en un miss el DB, y el resultado se repone en el caché con TTL.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Producto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productoCacheKey, id)
	var producto domain.Producto

	// 1. Intentar el caché
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &producto) == nil {
			return producto, nil
		}
		// Si la deserialización falla seguimos al DB.
	} else if err != cache.ErrCacheMiss {
		// Error real de caché (conexión perdida): se loguea y se continúa.
		r.logger.Warn("Falla al leer del caché de productos.", map[string]interface{}{"error": err.Error()})
	}

	// 2. Buscar en el DB
	query := `
        SELECT id, nombre, marca, precio, descripcion, numero_referencia, categoria,
               subcategoria, stock, activo, destacado, fecha_creacion, fecha_actualizado
        FROM productos
        WHERE id = $1`

	err = r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&producto.ID, &producto.Nombre, &producto.Marca, &producto.Precio,
		&producto.Descripcion, &producto.NumeroReferencia, &producto.Categoria,
		&producto.Subcategoria, &producto.Stock, &producto.Activo,
		&producto.Destacado, &producto.FechaCreacion, &producto.FechaActualizado,
	)

	if err == sql.ErrNoRows {
		return domain.Producto{}, apperror.NewNotFoundError(fmt.Sprintf("Producto con ID %s no existe.", id))
	}
	if err != nil {
		r.logger.Error("Falla al buscar el producto en el DB.", err)
		return domain.Producto{}, apperror.NewDBError("Falla al buscar el producto", err)
	}

	// 3. Reponer el caché
	if productoJSON, marshalErr := json.Marshal(producto); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, productoJSON, productoCacheTTL)
	}

	return producto, nil
}

// FindAll devuelve los productos activos que cumplen el filtro, del más
// reciente al más antiguo.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductoFilter) ([]domain.Producto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, nombre, marca, precio, descripcion, numero_referencia, categoria,
               subcategoria, stock, activo, destacado, fecha_creacion, fecha_actualizado
        FROM productos
        WHERE activo = TRUE`
	var params []interface{}

	if filter.Categoria != "" {
		params = append(params, filter.Categoria)
		query += fmt.Sprintf(" AND LOWER(categoria) = LOWER($%d)", len(params))
	}
	if filter.Subcategoria != "" {
		params = append(params, filter.Subcategoria)
		query += fmt.Sprintf(" AND LOWER(subcategoria) = LOWER($%d)", len(params))
	}
	if filter.Marca != "" {
		params = append(params, filter.Marca)
		query += fmt.Sprintf(" AND marca = $%d", len(params))
	}
	if filter.SoloDestacados {
		query += " AND destacado = TRUE"
	}

	query += " ORDER BY fecha_creacion DESC"

	if filter.Limit > 0 {
		params = append(params, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(params))
	}

	rows, err := r.DB.QueryContext(ctxTimeout, query, params...)
	if err != nil {
		r.logger.Error("Falla al listar el catálogo.", err)
		return nil, apperror.NewDBError("Falla al listar el catálogo", err)
	}
	defer rows.Close()

	var productos []domain.Producto
	for rows.Next() {
		var p domain.Producto
		err := rows.Scan(
			&p.ID, &p.Nombre, &p.Marca, &p.Precio, &p.Descripcion,
			&p.NumeroReferencia, &p.Categoria, &p.Subcategoria, &p.Stock,
			&p.Activo, &p.Destacado, &p.FechaCreacion, &p.FechaActualizado,
		)
		if err != nil {
			r.logger.Error("Falla al mapear una fila del catálogo.", err)
			return nil, apperror.NewDBError("Falla al mapear el catálogo", err)
		}
		productos = append(productos, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Falla al recorrer el catálogo.", err)
		return nil, apperror.NewDBError("Falla al recorrer el catálogo", err)
	}

	return productos, nil
}
