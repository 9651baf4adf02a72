package main

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	golambda "github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
)

type GroceryStackProps struct {
	awscdk.StackProps
	// SenderAddress must be a verified SES identity when the channel is ses.
	SenderAddress       string
	AllowedOrigin       string
	NotificationChannel string
	// ParameterPath holds optional SSM overrides read on cold start.
	ParameterPath string
	StatsdAddress string
}

func NewGroceryStack(scope constructs.Construct, id string, props *GroceryStackProps) awscdk.Stack {
	if props == nil {
		props = &GroceryStackProps{NotificationChannel: "ses"}
	}
	stack := awscdk.NewStack(scope, &id, &props.StackProps)

	// Lambda bundling options
	bundlingOptions := &golambda.BundlingOptions{
		GoBuildFlags: jsii.Strings(`-ldflags "-s -w"`),
		Environment: &map[string]*string{
			"CGO_ENABLED": jsii.String("0"),
		},
	}

	// Creating DynamoDB Items Table

	itemsTable := awsdynamodb.NewTable(stack, jsii.String("GroceryItems"), &awsdynamodb.TableProps{
		TableName: jsii.String("GroceryItems"),
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String("userEmail"),
			Type: awsdynamodb.AttributeType_STRING,
		},
		SortKey: &awsdynamodb.Attribute{
			Name: jsii.String("itemID"),
			Type: awsdynamodb.AttributeType_STRING,
		},
		BillingMode:   awsdynamodb.BillingMode_PAY_PER_REQUEST,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	// Creating an SNS Topic used when reminders go through sns

	remindersTopic := awssns.NewTopic(stack, jsii.String("GroceryRemindersTopic"), &awssns.TopicProps{
		EnforceSSL: jsii.Bool(true),
		TopicName:  jsii.String("GroceryRemindersTopic"),
	})

	environment := func() *map[string]*string {
		env := map[string]*string{
			"DYNAMO_TABLE_NAME":    itemsTable.TableName(),
			"ALLOWED_ORIGIN":       jsii.String(props.AllowedOrigin),
			"NOTIFICATION_CHANNEL": jsii.String(props.NotificationChannel),
			"SENDER_ADDRESS":       jsii.String(props.SenderAddress),
			"SNS_TOPIC_ARN":        remindersTopic.TopicArn(),
		}
		if props.ParameterPath != "" {
			env["CONFIG_PARAMETER_PATH"] = jsii.String(props.ParameterPath)
		}
		if props.StatsdAddress != "" {
			env["DD_DOGSTATSD_ADDR"] = jsii.String(props.StatsdAddress)
		}
		return &env
	}

	newFunction := func(name, entry string) golambda.GoFunction {
		fn := golambda.NewGoFunction(stack, jsii.String(name), &golambda.GoFunctionProps{
			FunctionName: jsii.String(name),
			Entry:        jsii.String(entry),
			Runtime:      awslambda.Runtime_PROVIDED_AL2(),
			Architecture: awslambda.Architecture_ARM_64(),
			Environment:  environment(),
			Bundling:     bundlingOptions,
		})
		if props.ParameterPath != "" {
			fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions: jsii.Strings("ssm:GetParametersByPath"),
				Resources: jsii.Strings(*stack.FormatArn(&awscdk.ArnComponents{
					Service:      jsii.String("ssm"),
					Resource:     jsii.String("parameter"),
					ResourceName: jsii.String(strings.TrimPrefix(props.ParameterPath, "/")),
				})),
			}))
		}
		return fn
	}

	notificationStatements := []awsiam.PolicyStatement{
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions:   jsii.Strings("ses:SendEmail"),
			Resources: jsii.Strings("*"),
		}),
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions:   jsii.Strings("sns:Publish"),
			Resources: jsii.Strings(*remindersTopic.TopicArn()),
		}),
	}

	// Item Lister Function
	itemListerLambda := newFunction("GroceryItemLister", "lambdas/item-lister")
	itemListerLambda.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("dynamodb:Scan"),
		Resources: jsii.Strings(*itemsTable.TableArn()),
	}))

	// Item Saver Function
	itemSaverLambda := newFunction("GroceryItemSaver", "lambdas/item-saver")
	itemSaverLambda.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("dynamodb:PutItem"),
		Resources: jsii.Strings(*itemsTable.TableArn()),
	}))

	// Expiry Notifier Function
	expiryNotifierLambda := newFunction("GroceryExpiryNotifier", "lambdas/expiry-notifier")
	expiryNotifierLambda.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("dynamodb:Scan"),
		Resources: jsii.Strings(*itemsTable.TableArn()),
	}))

	for _, statement := range notificationStatements {
		itemSaverLambda.AddToRolePolicy(statement)
		expiryNotifierLambda.AddToRolePolicy(statement)
	}

	// Preflight Responder Function
	preflightResponderLambda := newFunction("GroceryPreflightResponder", "lambdas/preflight-responder")

	// Running the expiry sweep every day at 08:00 UTC

	awsevents.NewRule(stack, jsii.String("GroceryDailyExpiryCheck"), &awsevents.RuleProps{
		RuleName: jsii.String("GroceryDailyExpiryCheck"),
		Schedule: awsevents.Schedule_Expression(jsii.String("cron(0 8 * * ? *)")),
		Targets: &[]awsevents.IRuleTarget{
			awseventstargets.NewLambdaFunction(expiryNotifierLambda, nil),
		},
	})

	// Defining Rest API in API Gateway. Preflight is answered by its own function.
	myGateway := awsapigateway.NewRestApi(stack, jsii.String("GroceryRestApi"), &awsapigateway.RestApiProps{
		RestApiName: jsii.String("GroceryRestApi"),
	})

	itemsResource := myGateway.Root().AddResource(jsii.String("items"), nil)
	itemsResource.AddMethod(jsii.String("GET"), awsapigateway.NewLambdaIntegration(itemListerLambda, nil), nil)
	itemsResource.AddMethod(jsii.String("POST"), awsapigateway.NewLambdaIntegration(itemSaverLambda, nil), nil)
	itemsResource.AddMethod(jsii.String("OPTIONS"), awsapigateway.NewLambdaIntegration(preflightResponderLambda, nil), nil)

	return stack
}

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	NewGroceryStack(app, "GroceryReminderStack", &GroceryStackProps{
		StackProps: awscdk.StackProps{
			Env: env(),
		},
		SenderAddress:       contextString(app, "senderAddress", ""),
		AllowedOrigin:       contextString(app, "allowedOrigin", "http://localhost:3000"),
		NotificationChannel: contextString(app, "notificationChannel", "ses"),
		ParameterPath:       contextString(app, "parameterPath", ""),
		StatsdAddress:       contextString(app, "statsdAddress", ""),
	})

	app.Synth(nil)
}

// contextString reads a -c key=value flag passed to cdk deploy.
func contextString(app awscdk.App, key, fallback string) string {
	if value, ok := app.Node().TryGetContext(jsii.String(key)).(string); ok && value != "" {
		return value
	}
	return fallback
}

func env() *awscdk.Environment {
	return nil
}
