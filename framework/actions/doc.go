// Package actions resolves the arguments of action methods from a bag of
// named attributes, the way laravel-actions does for its handle methods.
//
// An action describes the parameters of its methods:
//
//	type PublishArticle struct{}
//
//	func (a *PublishArticle) Signatures() map[string]actions.Signature {
//	    return map[string]actions.Signature{
//	        "Handle": actions.Params(
//	            actions.Typed[*models.Article]("article"),
//	            actions.Value("publishAt").WithDefault(time.Time{}),
//	        ),
//	    }
//	}
//
//	func (a *PublishArticle) Handle(article *models.Article, publishAt time.Time) (*models.Article, error) {
//	    ...
//	}
//
// and is run against a Context:
//
//	rc := actions.NewContext(actions.Attributes{"article": "42", "publish_at": when})
//	out, err := resolver.ResolveAndCall(ctx, rc, &PublishArticle{}, "Handle", true)
//
// Each parameter is resolved in this order:
//
//  1. The attribute named like the parameter, or like its snake_case form,
//     when the parameter has no class hint or the value already has the
//     hinted type.
//  2. For class-hinted parameters, an instance built by the container. If an
//     attribute matched and the instance is a RouteBindable, the attribute
//     value is turned into the matching record (ModelNotFoundError when
//     there is none), and with save set the record replaces the attribute.
//  3. The declared default.
//  4. nil, or a MissingArgumentError from a Strict resolver.
//
// In controller mode route parameters are matched too, and a resolved
// record never overwrites a key the request carries as input.
package actions
