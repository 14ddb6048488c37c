package inmo

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// ProductControllerRoutes holds the paths the controller mounts.
type ProductControllerRoutes struct {
	Collection string
	ByID       string
	ByName     string
	Update     string
	Delete     string
}

// ProductController exposes the catalog CRUD endpoints.
type ProductController struct {
	Logger   Logger
	Routes   *ProductControllerRoutes
	Products Products
}

type ProductControllerOption func(*ProductController) *ProductController

func NewProductController(opts ...ProductControllerOption) *ProductController {
	c := &ProductController{
		Logger: defLogger{},
		Routes: &ProductControllerRoutes{
			Collection: "/productos",
			ByID:       "/productos/id/:id",
			ByName:     "/productos/nombre/:nombre",
			Update:     "/productos/:id",
			Delete:     "/productos/eliminar/:id",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Products == nil {
		panic("Missing Products repository in product controller...")
	}

	return c
}

func WithProductsRepository(products Products) ProductControllerOption {
	return func(c *ProductController) *ProductController {
		c.Products = products
		return c
	}
}

func WithProductLogger(logger Logger) ProductControllerOption {
	return func(c *ProductController) *ProductController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func (p *ProductController) RegisterRoutes(app fiber.Router) {
	app.Get(p.Routes.Collection, p.List)
	app.Get(p.Routes.ByID, p.GetByID)
	app.Get(p.Routes.ByName, p.SearchByName)
	app.Post(p.Routes.Collection, p.Create)
	app.Patch(p.Routes.Update, p.Patch)
	app.Put(p.Routes.Update, p.Replace)
	app.Delete(p.Routes.Delete, p.Delete)
}

func (p *ProductController) List(c *fiber.Ctx) error {
	products, err := p.Products.List(c.UserContext())
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message":  "products found",
		"products": products,
	})
}

func (p *ProductController) GetByID(c *fiber.Ctx) error {
	product, err := p.Products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "product found",
		"product": product,
	})
}

func (p *ProductController) SearchByName(c *fiber.Ctx) error {
	prefix := decodeParam(c, "nombre")

	products, err := p.Products.FindByNamePrefix(c.UserContext(), prefix)
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message":  "products found",
		"products": products,
	})
}

// ProductCreateRequest is the payload for POST and PUT
type ProductCreateRequest struct {
	Name     string  `form:"name" json:"name"`
	Price    float64 `form:"price" json:"price"`
	Category string  `form:"category" json:"category"`
}

// Validate will run validation rules
func (r ProductCreateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Price, validation.Min(0.0)),
			validation.Field(&r.Category, validation.Length(0, 100)),
		)
	}, "Invalid product payload")
}

func (p *ProductController) Create(c *fiber.Ctx) error {
	payload := new(ProductCreateRequest)

	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("create product parse payload: %s", err)
		return RespondError(c, p.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, p.Logger, err)
	}

	product, err := p.Products.Create(c.UserContext(), ProductDraft{
		Name:     payload.Name,
		Price:    payload.Price,
		Category: payload.Category,
	})
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "product created",
		"product": product,
	})
}

// ProductPatchRequest carries only the fields the caller wants changed.
// Absent fields stay nil and are left untouched.
type ProductPatchRequest struct {
	Name     *string  `form:"name" json:"name"`
	Price    *float64 `form:"price" json:"price"`
	Category *string  `form:"category" json:"category"`
}

// Validate will run validation rules
func (r ProductPatchRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Length(1, 200)),
			validation.Field(&r.Category, validation.Length(0, 100)),
		)
	}, "Invalid product payload")
}

func (p *ProductController) Patch(c *fiber.Ctx) error {
	payload := new(ProductPatchRequest)

	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("patch product parse payload: %s", err)
		return RespondError(c, p.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, p.Logger, err)
	}

	product, err := p.Products.UpdatePartial(c.UserContext(), c.Params("id"), ProductPatch{
		Name:     payload.Name,
		Price:    payload.Price,
		Category: payload.Category,
	})
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "product updated",
		"product": product,
	})
}

func (p *ProductController) Replace(c *fiber.Ctx) error {
	payload := new(ProductCreateRequest)

	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("replace product parse payload: %s", err)
		return RespondError(c, p.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, p.Logger, err)
	}

	product, err := p.Products.Replace(c.UserContext(), c.Params("id"), ProductDraft{
		Name:     payload.Name,
		Price:    payload.Price,
		Category: payload.Category,
	})
	if err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "product replaced",
		"product": product,
	})
}

func (p *ProductController) Delete(c *fiber.Ctx) error {
	if err := p.Products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return RespondError(c, p.Logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// decodeParam unescapes a path parameter so searches work with
// percent encoded names.
func decodeParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
